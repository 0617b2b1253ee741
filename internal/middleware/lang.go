package middleware

import (
	"strings"

	"github.com/haierkeys/keepsake-service/pkg/code"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// requestLang 依次读取 ?lang=、lang 请求头与 Accept-Language 的首选项，统一为 zh_cn 形式
func requestLang(c *gin.Context) string {
	lang, ok := c.GetQuery("lang")
	if !ok || lang == "" {
		lang = c.GetHeader("lang")
	}
	if lang == "" {
		accept := c.GetHeader("Accept-Language")
		lang, _, _ = strings.Cut(accept, ",")
		lang, _, _ = strings.Cut(lang, ";")
	}
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(lang), "-", "_"))
}

// LangWithTranslator 按请求语言选择错误消息与校验信息的翻译器
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := requestLang(c)

		if uni != nil {
			trans, found := uni.GetTranslator(lang)
			if !found {
				base, _, _ := strings.Cut(lang, "_")
				if trans, found = uni.GetTranslator(base); !found {
					trans, _ = uni.GetTranslator("en")
				}
			}
			c.Set("trans", trans)
		}

		_ = code.SetGlobalDefaultLang(lang)

		c.Next()
	}
}
