package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// StaticAssets are the files referenced from the layout with a cache busting query
var StaticAssets = []string{
	"css/style.css",
	"js/app.js",
	"images/favicon.svg",
}

var (
	assetVersions   map[string]string
	assetVersionsMu sync.RWMutex
)

// InitAssetVersions hashes every static asset under root once at startup
func InitAssetVersions(root string) {
	versions := make(map[string]string, len(StaticAssets))
	for _, name := range StaticAssets {
		if v := computeFileHash(filepath.Join(root, name)); v != "" {
			versions[name] = v
		}
	}

	assetVersionsMu.Lock()
	assetVersions = versions
	assetVersionsMu.Unlock()
	log.Printf("[INFO] Asset versions initialized: %d of %d files", len(versions), len(StaticAssets))
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("[WARNING] Failed to open file for hashing %s: %v", path, err)
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log.Printf("[WARNING] Failed to hash file %s: %v", path, err)
		return ""
	}
	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// AssetVersion returns the version hash of a static asset, "1" when unknown.
// ctx keeps the signature in line with the other templ helpers.
func AssetVersion(ctx context.Context, name string) string {
	assetVersionsMu.RLock()
	defer assetVersionsMu.RUnlock()
	if v, ok := assetVersions[name]; ok {
		return v
	}
	return "1"
}

// AssetURL returns /static/<name>?v=<hash>
func AssetURL(ctx context.Context, name string) string {
	return "/static/" + name + "?v=" + AssetVersion(ctx, name)
}
