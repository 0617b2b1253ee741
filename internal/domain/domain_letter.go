package domain

import "time"

const (
	// DefaultSignature 信件默认署名
	DefaultSignature = "永远的朋友"
	// DefaultLetterTitle 默认信件标题，同时作为 id=default 的查找键
	DefaultLetterTitle = "欢迎使用"
	// DefaultLetterContent 默认信件正文
	DefaultLetterContent = "欢迎来到这里。这是一封默认的信件，你可以编辑或删除它，写下属于你的故事。"
	// DefaultLetterID 客户端请求默认信件时使用的保留 id
	DefaultLetterID = "default"
)

// Letter 信件领域模型
type Letter struct {
	ID        string
	Title     string
	Content   string
	Signature string
	Date      time.Time
}

// NewDefaultLetter 构造默认信件
func NewDefaultLetter(now time.Time) *Letter {
	return &Letter{
		Title:     DefaultLetterTitle,
		Content:   DefaultLetterContent,
		Signature: DefaultSignature,
		Date:      now,
	}
}
