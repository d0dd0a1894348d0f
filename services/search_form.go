package services

import (
	"errors"

	"profile_finder/models"
)

var (
	ErrMissingInformation = errors.New("missing information: job title, location and industry are required")
	ErrFormDisabled       = errors.New("search form is disabled while a search is running")
)

// FormField 表单输入框的展示模型
type FormField struct {
	ID          string
	Name        string
	Label       string
	Placeholder string
	Value       string
	Disabled    bool
}

// SearchForm 持有三个必填文本框；校验通过后把条件交给调用方回调
type SearchForm struct {
	JobTitle string
	Location string
	Industry string

	notifier Notifier
	onSubmit func(models.SearchCriteria)
}

func NewSearchForm(notifier Notifier, onSubmit func(models.SearchCriteria)) *SearchForm {
	return &SearchForm{notifier: notifier, onSubmit: onSubmit}
}

// Fill 设置表单内容
func (f *SearchForm) Fill(c models.SearchCriteria) {
	f.JobTitle = c.JobTitle
	f.Location = c.Location
	f.Industry = c.Industry
}

// Values 当前表单内容
func (f *SearchForm) Values() models.SearchCriteria {
	return models.SearchCriteria{
		JobTitle: f.JobTitle,
		Location: f.Location,
		Industry: f.Industry,
	}
}

// Submit 加载中直接拒绝；任一字段为空串时发出 "Missing Information" 通知且不回调。
// 只判断是否为空串，不做trim。
func (f *SearchForm) Submit(isLoading bool) error {
	if isLoading {
		return ErrFormDisabled
	}
	if f.JobTitle == "" || f.Location == "" || f.Industry == "" {
		if f.notifier != nil {
			f.notifier.Notify(MissingInformationNotice())
		}
		return ErrMissingInformation
	}
	if f.onSubmit != nil {
		f.onSubmit(f.Values())
	}
	return nil
}

// Fields 渲染用的输入框列表
func (f *SearchForm) Fields(isLoading bool) []FormField {
	return []FormField{
		{ID: "jobTitle", Name: "job_title", Label: "Job Title *", Placeholder: "e.g., Software Engineer", Value: f.JobTitle, Disabled: isLoading},
		{ID: "location", Name: "location", Label: "Location *", Placeholder: "e.g., San Francisco, CA", Value: f.Location, Disabled: isLoading},
		{ID: "industry", Name: "industry", Label: "Industry *", Placeholder: "e.g., Technology", Value: f.Industry, Disabled: isLoading},
	}
}
