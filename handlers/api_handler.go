package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"profile_finder/logger"
	"profile_finder/metrics"
	"profile_finder/models"
	"profile_finder/services"
	"profile_finder/utils"
)

// maxRequestBody /api/search 请求体上限
const maxRequestBody = 64 << 10

// searchRequestSchema 三个字段都必须是非空字符串，不做trim
const searchRequestSchema = `{
	"type": "object",
	"required": ["job_title", "location", "industry"],
	"properties": {
		"job_title": {"type": "string", "minLength": 1},
		"location":  {"type": "string", "minLength": 1},
		"industry":  {"type": "string", "minLength": 1}
	}
}`

var searchSchemaLoader = gojsonschema.NewStringLoader(searchRequestSchema)

// APIHandler JSON接口
type APIHandler struct {
	page     *services.SearchPage
	searcher services.Searcher
}

func NewAPIHandler(page *services.SearchPage, searcher services.Searcher) *APIHandler {
	return &APIHandler{page: page, searcher: searcher}
}

// Search godoc
// @Summary 按条件搜索候选人
// @Description 校验条件后同步调用webhook，返回规范化后的候选人列表，不修改会话状态
// @Tags 搜索
// @Accept json
// @Produce json
// @Param request body models.SearchRequest true "搜索条件"
// @Success 200 {object} models.APIResponse{data=models.SearchResponseData} "成功"
// @Failure 400 {object} models.APIResponse "参数错误"
// @Failure 502 {object} models.APIResponse "webhook调用失败"
// @Router /api/search [post]
func (h *APIHandler) Search(w http.ResponseWriter, r *http.Request) {
	if !isJSONContent(r) {
		utils.WriteCustomErrorResponse(w, models.CodeInvalidParams, "Content-Type must be application/json", map[string]interface{}{})
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		utils.WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{})
		return
	}

	criteria, code, problems := validateSearchRequest(body)
	if code != models.CodeSuccess {
		metrics.SearchesTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		utils.WriteErrorResponse(w, code, map[string]interface{}{
			"errors": problems,
		})
		return
	}

	results, err := h.searcher.Search(r.Context(), criteria)
	if err != nil {
		logger.Warn("API搜索失败", "error", err)
		data := map[string]interface{}{}
		var webhookErr *services.WebhookError
		if errors.As(err, &webhookErr) {
			data["status"] = webhookErr.StatusCode
		}
		utils.WriteCustomErrorResponse(w, models.CodeThirdPartyAPIError,
			"Failed to search profiles. Please try again.", data)
		return
	}

	utils.WriteSuccessResponse(w, models.SearchResponseData{
		Count:   len(results),
		Summary: utils.FoundProfilesSummary(len(results)),
		Results: results,
	})
}

// validateSearchRequest 返回业务码：缺少字段或字段为空为 CodeMissingParams，其他结构问题为 CodeInvalidParams
func validateSearchRequest(body []byte) (models.SearchCriteria, int, []string) {
	result, err := gojsonschema.Validate(searchSchemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return models.SearchCriteria{}, models.CodeInvalidParams, []string{err.Error()}
	}
	if !result.Valid() {
		code := models.CodeMissingParams
		problems := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			problems[i] = desc.String()
			switch desc.Type() {
			case "required", "string_gte":
			default:
				code = models.CodeInvalidParams
			}
		}
		return models.SearchCriteria{}, code, problems
	}

	var req models.SearchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return models.SearchCriteria{}, models.CodeInvalidParams, []string{err.Error()}
	}
	return models.SearchCriteria{
		JobTitle: req.JobTitle,
		Location: req.Location,
		Industry: req.Industry,
	}, models.CodeSuccess, nil
}

// State godoc
// @Summary 获取当前会话状态
// @Description 返回表单、加载状态、结果、选择以及派生标志
// @Tags 会话
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.StateResponseData} "成功"
// @Failure 500 {object} models.APIResponse "服务器错误"
// @Router /api/state [get]
func (h *APIHandler) State(w http.ResponseWriter, r *http.Request) {
	state, err := h.page.State(r.Context(), SessionID(r))
	if err != nil {
		logger.Error("读取会话状态失败", "error", err)
		utils.WriteCustomErrorResponse(w, models.CodeSessionStoreError, err.Error(), map[string]interface{}{})
		return
	}
	utils.WriteSuccessResponse(w, state)
}

// Health godoc
// @Summary 健康检查
// @Tags 运维
// @Produce json
// @Success 200 {object} models.APIResponse "成功"
// @Router /healthz [get]
func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"status":    "ok",
		"in_flight": h.page.InFlight(),
	})
}

func isJSONContent(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return ct == "" || strings.HasPrefix(ct, "application/json")
}
