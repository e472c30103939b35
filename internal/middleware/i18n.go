// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gradpath/gradpath-backend/internal/i18n"
)

// I18nMiddleware resolves the response language from the Accept-Language
// header and stores it in the request context under "lang".
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", resolveLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// resolveLanguage picks the first preference from an Accept-Language value
// (e.g. "zh-TW,zh;q=0.9,en;q=0.8") that matches a supported locale. Falls
// back to English.
func resolveLanguage(header string) string {
	supported := i18n.GetSupportedLanguages()

	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.Split(part, ";")[0])
		if tag == "" {
			continue
		}
		tag = strings.ReplaceAll(tag, "-", "_")

		for _, lang := range supported {
			if strings.EqualFold(tag, lang) || strings.EqualFold(baseTag(tag), baseTag(lang)) {
				return lang
			}
		}
		// Traditional Chinese script tag maps to the Taiwan locale
		if strings.EqualFold(tag, "zh_Hant") {
			return "zh_TW"
		}
	}

	return "en"
}

func baseTag(tag string) string {
	return strings.Split(tag, "_")[0]
}
