package models

// RoadmapStep is one milestone of the growth roadmap section
type RoadmapStep struct {
	Title       string
	Description string
	Status      string // guaranteed, active or goal
}

// ProofMetric is a headline number on the results section
type ProofMetric struct {
	Label string
	Value string
}

// SuccessStory is a client testimonial with before/after numbers
type SuccessStory struct {
	StreamerName    string
	BeforeFollowers int
	AfterFollowers  int
	Timeframe       string
	Plan            string
	Achievement     string
	Revenue         string
	Testimonial     string
	AvatarURL       string
	TwitchURL       string
}

// GrowthMultiple returns how many times the follower count grew, rounded down
func (s SuccessStory) GrowthMultiple() int {
	if s.BeforeFollowers <= 0 {
		return 0
	}
	return s.AfterFollowers / s.BeforeFollowers
}

// PaymentMethod is shown on the payment step
type PaymentMethod struct {
	Name  string
	Color string
}

var RoadmapSteps = []RoadmapStep{
	{
		Title:       "Twitch Affiliate",
		Description: "Meet the requirements: 50+ followers, 500+ minutes streamed, 7+ unique broadcast days, 3+ concurrent viewers",
		Status:      "guaranteed",
	},
	{
		Title:       "Channel Growth",
		Description: "Scale your audience with targeted ads, community engagement, and content optimization",
		Status:      "active",
	},
	{
		Title:       "Twitch Partner",
		Description: "Achieve Partner status with consistent growth and professional presentation",
		Status:      "goal",
	},
}

var ProofMetrics = []ProofMetric{
	{Label: "Channels Grown", Value: "250+"},
	{Label: "Affiliates Created", Value: "189"},
	{Label: "Average Growth Rate", Value: "340%"},
	{Label: "Client Satisfaction", Value: "98%"},
}

var PaymentMethods = []PaymentMethod{
	{Name: "PayPal", Color: "bg-blue-500"},
	{Name: "CashApp", Color: "bg-green-500"},
	{Name: "Apple Pay", Color: "bg-gray-800"},
	{Name: "Card Payment", Color: "bg-purple-500"},
}

var SuccessStories = []SuccessStory{
	{
		StreamerName:    "tnt891",
		BeforeFollowers: 15,
		AfterFollowers:  2847,
		Timeframe:       "4 months",
		Plan:            "Premium Tier",
		Achievement:     "Twitch Partner",
		Revenue:         "$890/month",
		Testimonial:     "Started with zero viewers, now I consistently get 90+ concurrent viewers every stream. The targeted ads brought exactly the gaming community I needed!",
		AvatarURL:       "/static/images/stories/tnt891.png",
		TwitchURL:       "https://www.twitch.tv/tnt891",
	},
	{
		StreamerName:    "YvngOllieStreams",
		BeforeFollowers: 45,
		AfterFollowers:  1890,
		Timeframe:       "3 months",
		Plan:            "Growth Tier",
		Achievement:     "Twitch Affiliate + Growing Fast",
		Revenue:         "$650/month",
		Testimonial:     "Amazing growth! From barely any followers to a solid community. The affiliate program helped me start earning from my passion!",
		AvatarURL:       "/static/images/stories/yvngolliestreams.png",
		TwitchURL:       "https://www.twitch.tv/YvngOllieStreams",
	},
	{
		StreamerName:    "ilyjump",
		BeforeFollowers: 78,
		AfterFollowers:  2340,
		Timeframe:       "3 months",
		Plan:            "Growth Tier",
		Achievement:     "Twitch Affiliate",
		Revenue:         "$780/month",
		Testimonial:     "Perfect service! The growth was organic and my community loves the content. Reached affiliate faster than I ever imagined!",
		AvatarURL:       "/static/images/stories/ilyjump.png",
		TwitchURL:       "https://www.twitch.tv/ilyjump",
	},
	{
		StreamerName:    "faronova",
		BeforeFollowers: 92,
		AfterFollowers:  3120,
		Timeframe:       "4 months",
		Plan:            "Premium Tier",
		Achievement:     "Twitch Affiliate + Partner Track",
		Revenue:         "$1,120/month",
		Testimonial:     "Exceptional results! My channel grew beyond expectations and the community engagement is incredible. Highly recommend their services!",
		AvatarURL:       "/static/images/stories/faronova.png",
		TwitchURL:       "https://www.twitch.tv/faronova",
	},
}
