package services

import (
	"profile_finder/logger"
	"profile_finder/models"
	"profile_finder/utils"
)

// Notifier 面向用户的通知出口，由调用方注入
type Notifier interface {
	Notify(n models.Notice)
}

// NotifierFunc 函数适配器
type NotifierFunc func(n models.Notice)

func (f NotifierFunc) Notify(n models.Notice) { f(n) }

// sessionNotifier 把通知暂存到会话中，下次渲染页面时展示
type sessionNotifier struct {
	session *models.Session
}

// NewSessionNotifier 创建写入会话的通知器
func NewSessionNotifier(s *models.Session) Notifier {
	return &sessionNotifier{session: s}
}

func (n *sessionNotifier) Notify(notice models.Notice) {
	n.session.Notices = append(n.session.Notices, notice)
}

type loggingNotifier struct {
	next      Notifier
	sessionID string
}

// WithLogging 在转发之前记录通知
func WithLogging(next Notifier, sessionID string) Notifier {
	return &loggingNotifier{next: next, sessionID: sessionID}
}

func (n *loggingNotifier) Notify(notice models.Notice) {
	logger.Info("notify user",
		"session", n.sessionID,
		"title", notice.Title,
		"variant", notice.Variant)
	n.next.Notify(notice)
}

// MissingInformationNotice 表单校验失败
func MissingInformationNotice() models.Notice {
	return models.Notice{
		Title:       "Missing Information",
		Description: "Please fill in all required fields",
		Variant:     models.NoticeDestructive,
	}
}

// SearchFailedNotice 搜索请求失败
func SearchFailedNotice() models.Notice {
	return models.Notice{
		Title:       "Error",
		Description: "Failed to search profiles. Please try again.",
		Variant:     models.NoticeDestructive,
	}
}

// SearchSucceededNotice 搜索成功，报告结果数量
func SearchSucceededNotice(count int) models.Notice {
	return models.Notice{
		Title:       "Success!",
		Description: utils.FoundProfilesSummary(count),
		Variant:     models.NoticeDefault,
	}
}
