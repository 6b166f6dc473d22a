package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr      string
	Port            string
	StaticRoot      string
	PagesDir        string
	PagesURLPath    string
	PageTheme       string
	SanitizeFields  bool
	ArticleMarkdown bool
	GinMode         string
}

// Load 从环境变量读取应用配置，并为缺失项提供默认值。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "3000"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	staticRoot := strings.TrimSpace(os.Getenv("STATIC_ROOT"))
	if staticRoot == "" {
		staticRoot = "public"
	}

	pagesDir := strings.TrimSpace(os.Getenv("PAGES_DIR"))
	if pagesDir == "" {
		pagesDir = filepath.Join(staticRoot, "pages")
	}

	pagesURLPath := strings.TrimSpace(os.Getenv("PAGES_URL_PATH"))
	if pagesURLPath == "" {
		pagesURLPath = "/pages"
	}
	pagesURLPath = "/" + strings.Trim(pagesURLPath, "/")

	pageTheme := strings.ToLower(strings.TrimSpace(os.Getenv("PAGE_THEME")))
	if pageTheme == "" {
		pageTheme = "release"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	return AppConfig{
		ListenAddr:      listenAddr,
		Port:            port,
		StaticRoot:      staticRoot,
		PagesDir:        pagesDir,
		PagesURLPath:    pagesURLPath,
		PageTheme:       pageTheme,
		SanitizeFields:  envBool("SANITIZE_FIELDS", false),
		ArticleMarkdown: envBool("ARTICLE_MARKDOWN", false),
		GinMode:         ginMode,
	}
}

// envBool 解析布尔型环境变量，无法识别时回退到默认值。
func envBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
