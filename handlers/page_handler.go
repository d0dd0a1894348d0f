package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"profile_finder/logger"
	"profile_finder/models"
	"profile_finder/services"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("page.html").
	Funcs(template.FuncMap{"profileHref": profileHref}).
	ParseFS(templateFS, "templates/page.html"))

// 这些scheme可执行脚本，交给html/template过滤
var scriptSchemes = map[string]bool{"javascript": true, "vbscript": true, "data": true}

// profileHref 原样输出webhook返回的链接，只拦截可执行脚本的scheme
func profileHref(raw string) any {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || scriptSchemes[strings.ToLower(u.Scheme)] {
		return raw
	}
	return template.URL(raw)
}

// PageHandler 服务端渲染的单页，所有动作以表单POST提交后重定向回首页
type PageHandler struct {
	page *services.SearchPage
}

func NewPageHandler(page *services.SearchPage) *PageHandler {
	return &PageHandler{page: page}
}

// Index 按会话状态渲染表单、加载提示或结果
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	view, err := h.page.View(r.Context(), SessionID(r))
	if err != nil {
		logger.Error("构建页面失败", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplate.Execute(w, view); err != nil {
		logger.Error("渲染页面失败", "error", err)
	}
}

// Search 提交搜索表单
func (h *PageHandler) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	criteria := models.SearchCriteria{
		JobTitle: r.PostFormValue("job_title"),
		Location: r.PostFormValue("location"),
		Industry: r.PostFormValue("industry"),
	}
	h.finish(w, r, h.page.Submit(r.Context(), SessionID(r), criteria))
}

// Decision 对单条结果选择 Yes/No
func (h *PageHandler) Decision(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	var yes bool
	switch r.PostFormValue("choice") {
	case "yes":
		yes = true
	case "no":
		yes = false
	default:
		http.Error(w, "choice must be yes or no", http.StatusBadRequest)
		return
	}
	h.finish(w, r, h.page.Decide(r.Context(), SessionID(r), r.PostFormValue("key"), yes))
}

func (h *PageHandler) DeepDive(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, h.page.EnterDeepDive(r.Context(), SessionID(r)))
}

func (h *PageHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, h.page.Back(r.Context(), SessionID(r)))
}

func (h *PageHandler) NewSearch(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, h.page.NewSearch(r.Context(), SessionID(r)))
}

// finish 业务错误已体现在会话状态中，直接回到首页；存储错误返回500
func (h *PageHandler) finish(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil && !isUserError(err) {
		logger.Error("处理页面动作失败", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if err != nil {
		logger.Debug("页面动作被拒绝", "path", r.URL.Path, "reason", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func isUserError(err error) bool {
	for _, target := range []error{
		services.ErrMissingInformation,
		services.ErrSearchInProgress,
		services.ErrNoResults,
		services.ErrNotSelectable,
		services.ErrUnknownRecord,
		services.ErrDeepDiveUnavailable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
