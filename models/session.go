package models

import "time"

// NoticeVariant 通知样式
type NoticeVariant string

const (
	NoticeDefault     NoticeVariant = "default"
	NoticeDestructive NoticeVariant = "destructive"
)

// Notice 面向用户的非阻塞通知（toast）
type Notice struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Variant     NoticeVariant `json:"variant"`
}

// ResultsView 结果区当前视图
type ResultsView string

const (
	ViewSelection ResultsView = "selection"
	ViewDeepDive  ResultsView = "deep_dive"
)

// Session 单个浏览器会话的可序列化快照，可存放在内存、Redis或MySQL中
type Session struct {
	ID           string          `json:"id"`
	Form         SearchCriteria  `json:"form"`                    // 表单当前填写的内容
	Loading      bool            `json:"loading"`                 // 是否有请求在进行中
	LoadingSince time.Time       `json:"loading_since,omitempty"` // 本次搜索开始时间
	Searched     bool            `json:"searched"`                // 最近一次搜索已成功返回
	Results      []ProfileResult `json:"results"`
	Decisions    map[string]bool `json:"decisions"` // 记录key -> 是否选中，未出现即未决定
	View         ResultsView     `json:"view"`
	Notices      []Notice        `json:"notices,omitempty"` // 待展示的通知
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewSession 创建空会话
func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		Decisions: map[string]bool{},
		View:      ViewSelection,
		UpdatedAt: time.Now(),
	}
}

// ResetResults 清空结果、选择和视图
func (s *Session) ResetResults() {
	s.Results = nil
	s.Decisions = map[string]bool{}
	s.View = ViewSelection
	s.Searched = false
}

// DrainNotices 取出并清空待展示通知
func (s *Session) DrainNotices() []Notice {
	notices := s.Notices
	s.Notices = nil
	return notices
}
