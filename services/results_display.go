package services

import (
	"errors"
	"fmt"

	"profile_finder/models"
	"profile_finder/utils"
)

var (
	ErrNotSelectable       = errors.New("results display is read-only")
	ErrUnknownRecord       = errors.New("unknown result record")
	ErrDeepDiveUnavailable = errors.New("deep dive requires every profile decided and at least one selected")
)

// Decision 单条记录的三态选择
type Decision int

const (
	DecisionUnset Decision = iota
	DecisionYes
	DecisionNo
)

// ProfileCard 选择视图中的卡片
type ProfileCard struct {
	Index       int
	Key         string
	Name        string
	JobTitle    string
	Company     string
	Location    string
	Description string
	LinkedinURL string
	Decision    Decision
}

func (c ProfileCard) Yes() bool { return c.Decision == DecisionYes }
func (c ProfileCard) No() bool { return c.Decision == DecisionNo }

// CandidateCard 深入查看视图中的卡片，编号按选中子集内的位置计算
type CandidateCard struct {
	Number  int
	Label   string
	Key     string
	Profile models.ProfileResult
}

// RecordKeys 为每条记录生成稳定key：MD5(Name|Linkedin URL)，重复记录追加序号
func RecordKeys(results []models.ProfileResult) []string {
	keys := make([]string, len(results))
	seen := make(map[string]int, len(results))
	for i, r := range results {
		base := utils.FingerprintFields(r.Name, r.LinkedinURL)
		seen[base]++
		if n := seen[base]; n > 1 {
			keys[i] = fmt.Sprintf("%s-%d", base, n)
		} else {
			keys[i] = base
		}
	}
	return keys
}

// ResultsDisplay 结果展示。selectable=false 为只读卡片网格；
// selectable=true 时支持逐条 Yes/No 选择并进入深入查看
type ResultsDisplay struct {
	results    []models.ProfileResult
	keys       []string
	index      map[string]int
	selectable bool
	decisions  map[string]bool
	view       models.ResultsView
}

// NewResultsDisplay 新的结果数组总是从空选择开始
func NewResultsDisplay(results []models.ProfileResult, selectable bool) *ResultsDisplay {
	keys := RecordKeys(results)
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		index[k] = i
	}
	return &ResultsDisplay{
		results:    results,
		keys:       keys,
		index:      index,
		selectable: selectable,
		decisions:  map[string]bool{},
		view:       models.ViewSelection,
	}
}

// RestoreResultsDisplay 从会话快照恢复，丢弃不属于当前结果的选择
func RestoreResultsDisplay(results []models.ProfileResult, selectable bool, decisions map[string]bool, view models.ResultsView) *ResultsDisplay {
	d := NewResultsDisplay(results, selectable)
	if !selectable {
		return d
	}
	for k, v := range decisions {
		if _, ok := d.index[k]; ok {
			d.decisions[k] = v
		}
	}
	if view == models.ViewDeepDive && d.CanDeepDive() {
		d.view = models.ViewDeepDive
	}
	return d
}

func (d *ResultsDisplay) Empty() bool { return len(d.results) == 0 }

func (d *ResultsDisplay) Len() int { return len(d.results) }

func (d *ResultsDisplay) Selectable() bool { return d.selectable }

// Keys 与结果一一对应的记录key
func (d *ResultsDisplay) Keys() []string { return append([]string(nil), d.keys...) }

func (d *ResultsDisplay) View() models.ResultsView { return d.view }

// Decide 设置某条记录的选择，可重复点击覆盖
func (d *ResultsDisplay) Decide(key string, yes bool) error {
	if !d.selectable {
		return ErrNotSelectable
	}
	if _, ok := d.index[key]; !ok {
		return ErrUnknownRecord
	}
	d.decisions[key] = yes
	if d.view == models.ViewDeepDive && !d.CanDeepDive() {
		d.view = models.ViewSelection
	}
	return nil
}

// DecideAt 按下标设置选择
func (d *ResultsDisplay) DecideAt(i int, yes bool) error {
	if i < 0 || i >= len(d.keys) {
		return ErrUnknownRecord
	}
	return d.Decide(d.keys[i], yes)
}

func (d *ResultsDisplay) Decision(key string) Decision {
	v, ok := d.decisions[key]
	switch {
	case !ok:
		return DecisionUnset
	case v:
		return DecisionYes
	default:
		return DecisionNo
	}
}

// Decisions 选择快照（副本）
func (d *ResultsDisplay) Decisions() map[string]bool {
	out := make(map[string]bool, len(d.decisions))
	for k, v := range d.decisions {
		out[k] = v
	}
	return out
}

// AllDecided 每条记录都已选择 Yes 或 No（全部为 No 也成立）
func (d *ResultsDisplay) AllDecided() bool {
	for _, k := range d.keys {
		if _, ok := d.decisions[k]; !ok {
			return false
		}
	}
	return true
}

func (d *ResultsDisplay) SelectedCount() int {
	n := 0
	for _, k := range d.keys {
		if d.decisions[k] {
			n++
		}
	}
	return n
}

// Selected 选中的记录，保持原始顺序
func (d *ResultsDisplay) Selected() []models.ProfileResult {
	out := make([]models.ProfileResult, 0, d.SelectedCount())
	for i, k := range d.keys {
		if d.decisions[k] {
			out = append(out, d.results[i])
		}
	}
	return out
}

// CanDeepDive 全部已决定且至少选中一条
func (d *ResultsDisplay) CanDeepDive() bool {
	return d.selectable && !d.Empty() && d.AllDecided() && d.SelectedCount() > 0
}

func (d *ResultsDisplay) EnterDeepDive() error {
	if !d.CanDeepDive() {
		return ErrDeepDiveUnavailable
	}
	d.view = models.ViewDeepDive
	return nil
}

// Back 返回选择视图，保留已有选择
func (d *ResultsDisplay) Back() {
	d.view = models.ViewSelection
}

func (d *ResultsDisplay) Heading() string {
	return "Search Results"
}

func (d *ResultsDisplay) Summary() string {
	return utils.FoundProfilesSummary(len(d.results))
}

// Banner 全部决定后的提示文案，不能进入深入查看时为空
func (d *ResultsDisplay) Banner() string {
	if !d.CanDeepDive() {
		return ""
	}
	n := d.SelectedCount()
	return fmt.Sprintf("All profiles reviewed. %d %s selected for a deep dive.",
		n, utils.Pluralize(n, "candidate", "candidates"))
}

func (d *ResultsDisplay) Cards() []ProfileCard {
	cards := make([]ProfileCard, len(d.results))
	for i, r := range d.results {
		cards[i] = ProfileCard{
			Index:       i,
			Key:         d.keys[i],
			Name:        r.Name,
			JobTitle:    r.JobTitle,
			Company:     r.Company,
			Location:    r.Location,
			Description: r.Description,
			LinkedinURL: r.LinkedinURL,
			Decision:    d.Decision(d.keys[i]),
		}
	}
	return cards
}

// Candidates 深入查看的卡片，"Candidate #n" 按选中子集内的位置编号
func (d *ResultsDisplay) Candidates() []CandidateCard {
	out := make([]CandidateCard, 0, d.SelectedCount())
	for i, k := range d.keys {
		if !d.decisions[k] {
			continue
		}
		n := len(out) + 1
		out = append(out, CandidateCard{
			Number:  n,
			Label:   fmt.Sprintf("Candidate #%d", n),
			Key:     k,
			Profile: d.results[i],
		})
	}
	return out
}

func (d *ResultsDisplay) DeepDiveSummary() string {
	n := d.SelectedCount()
	return fmt.Sprintf("Deep dive into %d selected %s out of %d",
		n, utils.Pluralize(n, "profile", "profiles"), len(d.results))
}
