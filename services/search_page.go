package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"profile_finder/logger"
	"profile_finder/models"
	"profile_finder/repository"
)

var (
	ErrSearchInProgress = errors.New("a search is already in progress")
	ErrNoResults        = errors.New("no results to act on")
)

// DefaultOrphanAfter 加载状态在本进程没有对应请求时，超过该时长视为失败
const DefaultOrphanAfter = 10 * time.Minute

// finishTimeout 后台请求结束后写回会话的超时
const finishTimeout = 5 * time.Second

// PageState 页面状态机
type PageState string

const (
	StateIdle      PageState = "idle"
	StateSearching PageState = "searching"
	StateResults   PageState = "results"
)

// PageOptions 页面控制器配置
type PageOptions struct {
	Selectable   bool
	FactInterval time.Duration
	OrphanAfter  time.Duration
	Facts        []string
}

// LoadingView 加载中视图
type LoadingView struct {
	Heading        string
	Caption        string
	Fact           string
	RefreshSeconds int
	ElapsedSeconds int
}

// PageView 渲染单页所需的全部数据
type PageView struct {
	State     PageState
	Fields    []FormField
	Loading   *LoadingView
	Results   *ResultsDisplay
	NoResults bool // 搜索成功但没有结果
	Notices   []models.Notice
}

// searchRuntime 进程内的搜索运行时，不进入会话快照
type searchRuntime struct {
	cancel  context.CancelFunc
	loading *LoadingState
	done    chan struct{}
}

// sessionLock 按会话串行化修改，refs为持有或等待该锁的调用数
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// SearchPage 按会话编排表单、加载状态和结果展示，并发出webhook请求
type SearchPage struct {
	repo     repository.SessionRepository
	searcher Searcher
	opts     PageOptions
	now      func() time.Time

	mu       sync.Mutex
	locks    map[string]*sessionLock
	runtimes map[string]*searchRuntime
	wg       sync.WaitGroup
}

func NewSearchPage(repo repository.SessionRepository, searcher Searcher, opts PageOptions) *SearchPage {
	if opts.FactInterval <= 0 {
		opts.FactInterval = DefaultFactInterval
	}
	if opts.OrphanAfter <= 0 {
		opts.OrphanAfter = DefaultOrphanAfter
	}
	if opts.Facts == nil {
		opts.Facts = LoadingFacts
	}
	return &SearchPage{
		repo:     repo,
		searcher: searcher,
		opts:     opts,
		now:      time.Now,
		locks:    make(map[string]*sessionLock),
		runtimes: make(map[string]*searchRuntime),
	}
}

// lock 获取会话锁，返回的函数释放锁，最后一个使用者释放时移除条目
func (p *SearchPage) lock(id string) func() {
	p.mu.Lock()
	l, ok := p.locks[id]
	if !ok {
		l = &sessionLock{}
		p.locks[id] = l
	}
	l.refs++
	p.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		p.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(p.locks, id)
		}
		p.mu.Unlock()
	}
}

func (p *SearchPage) runtime(id string) *searchRuntime {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runtimes[id]
}

// detach 取出并移除会话的运行时
func (p *SearchPage) detach(id string) *searchRuntime {
	p.mu.Lock()
	defer p.mu.Unlock()
	rt := p.runtimes[id]
	delete(p.runtimes, id)
	return rt
}

func (p *SearchPage) load(ctx context.Context, id string) (*models.Session, error) {
	s, err := p.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return models.NewSession(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return s, nil
}

func (p *SearchPage) save(ctx context.Context, s *models.Session) error {
	if err := p.repo.Save(ctx, s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (p *SearchPage) notifier(s *models.Session) Notifier {
	return WithLogging(NewSessionNotifier(s), s.ID)
}

func stateOf(s *models.Session) PageState {
	switch {
	case s.Loading:
		return StateSearching
	case len(s.Results) > 0:
		return StateResults
	default:
		return StateIdle
	}
}

// reconcile 会话处于加载中但本进程没有对应请求，且已超过 OrphanAfter 时按失败处理
func (p *SearchPage) reconcile(s *models.Session) bool {
	if !s.Loading || p.runtime(s.ID) != nil {
		return false
	}
	if p.now().Sub(s.LoadingSince) < p.opts.OrphanAfter {
		return false
	}
	logger.Warn("搜索请求已丢失，标记为失败", "session", s.ID, "loading_since", s.LoadingSince)
	s.Loading = false
	s.LoadingSince = time.Time{}
	s.ResetResults()
	p.notifier(s).Notify(SearchFailedNotice())
	return true
}

func (p *SearchPage) display(s *models.Session) *ResultsDisplay {
	return RestoreResultsDisplay(s.Results, p.opts.Selectable, s.Decisions, s.View)
}

// View 构建页面视图，并取出待展示的通知
func (p *SearchPage) View(ctx context.Context, id string) (*PageView, error) {
	unlock := p.lock(id)
	defer unlock()

	s, err := p.load(ctx, id)
	if err != nil {
		return nil, err
	}
	p.reconcile(s)

	state := stateOf(s)
	form := NewSearchForm(nil, nil)
	form.Fill(s.Form)

	view := &PageView{
		State:   state,
		Fields:  form.Fields(s.Loading),
		Notices: s.DrainNotices(),
	}
	switch state {
	case StateSearching:
		view.Loading = p.loadingView(s)
	case StateResults:
		view.Results = p.display(s)
	case StateIdle:
		view.NoResults = s.Searched
	}

	if err := p.save(ctx, s); err != nil {
		return nil, err
	}
	return view, nil
}

func (p *SearchPage) loadingView(s *models.Session) *LoadingView {
	elapsed := p.now().Sub(s.LoadingSince)
	fact := FactAt(p.opts.Facts, p.opts.FactInterval, elapsed)
	if rt := p.runtime(s.ID); rt != nil {
		fact = rt.loading.Current()
	}
	return &LoadingView{
		Heading:        LoadingHeading,
		Caption:        LoadingCaption,
		Fact:           fact,
		RefreshSeconds: int(p.opts.FactInterval / time.Second),
		ElapsedSeconds: int(elapsed / time.Second),
	}
}

// Submit 校验表单并在后台发出搜索请求。表单内容总会保留在会话中
func (p *SearchPage) Submit(ctx context.Context, id string, criteria models.SearchCriteria) error {
	unlock := p.lock(id)
	defer unlock()

	s, err := p.load(ctx, id)
	if err != nil {
		return err
	}
	p.reconcile(s)
	s.Form = criteria

	form := NewSearchForm(p.notifier(s), func(c models.SearchCriteria) {
		p.start(s, c)
	})
	form.Fill(criteria)
	submitErr := form.Submit(s.Loading)
	if errors.Is(submitErr, ErrFormDisabled) {
		return ErrSearchInProgress
	}

	if err := p.save(ctx, s); err != nil {
		p.Teardown(id)
		return err
	}
	return submitErr
}

// start 清空结果、进入加载状态并启动后台请求。调用方持有会话锁
func (p *SearchPage) start(s *models.Session, c models.SearchCriteria) {
	s.ResetResults()
	s.Loading = true
	s.LoadingSince = p.now()

	ctx, cancel := context.WithCancel(context.Background())
	rt := &searchRuntime{
		cancel:  cancel,
		loading: NewLoadingState(p.opts.Facts, p.opts.FactInterval),
		done:    make(chan struct{}),
	}
	rt.loading.Start()

	p.mu.Lock()
	p.runtimes[s.ID] = rt
	p.mu.Unlock()

	logger.Info("开始搜索",
		"session", s.ID,
		"job_title", c.JobTitle,
		"location", c.Location,
		"industry", c.Industry)

	p.wg.Add(1)
	go p.runSearch(ctx, s.ID, rt, c)
}

func (p *SearchPage) runSearch(ctx context.Context, id string, rt *searchRuntime, c models.SearchCriteria) {
	defer p.wg.Done()
	defer close(rt.done)

	results, err := p.searcher.Search(ctx, c)
	p.finishSearch(id, rt, results, err)
}

func (p *SearchPage) finishSearch(id string, rt *searchRuntime, results []models.ProfileResult, searchErr error) {
	unlock := p.lock(id)
	defer unlock()

	p.mu.Lock()
	current := p.runtimes[id] == rt
	if current {
		delete(p.runtimes, id)
	}
	p.mu.Unlock()

	rt.loading.Stop()
	rt.cancel()
	if !current {
		// 会话已被清理或重新开始
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), finishTimeout)
	defer cancel()

	s, err := p.repo.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrSessionNotFound) {
			logger.Error("读取会话失败", "session", id, "error", err)
		}
		return
	}

	s.Loading = false
	s.LoadingSince = time.Time{}
	n := p.notifier(s)
	if searchErr != nil {
		logger.Error("搜索失败", "session", id, "error", searchErr)
		s.ResetResults()
		n.Notify(SearchFailedNotice())
	} else {
		s.ResetResults()
		s.Results = results
		s.Searched = true
		n.Notify(SearchSucceededNotice(len(results)))
	}

	if err := p.save(ctx, s); err != nil {
		logger.Error("保存搜索结果失败", "session", id, "error", err)
	}
}

// mutateResults 在结果状态下修改选择，其余状态返回 ErrNoResults
func (p *SearchPage) mutateResults(ctx context.Context, id string, fn func(d *ResultsDisplay) error) error {
	unlock := p.lock(id)
	defer unlock()

	s, err := p.load(ctx, id)
	if err != nil {
		return err
	}
	if stateOf(s) != StateResults {
		return ErrNoResults
	}

	d := p.display(s)
	if err := fn(d); err != nil {
		return err
	}
	s.Decisions = d.Decisions()
	s.View = d.View()
	return p.save(ctx, s)
}

// Decide 设置单条记录的 Yes/No
func (p *SearchPage) Decide(ctx context.Context, id, key string, yes bool) error {
	return p.mutateResults(ctx, id, func(d *ResultsDisplay) error {
		return d.Decide(key, yes)
	})
}

// EnterDeepDive 切换到深入查看
func (p *SearchPage) EnterDeepDive(ctx context.Context, id string) error {
	return p.mutateResults(ctx, id, func(d *ResultsDisplay) error {
		return d.EnterDeepDive()
	})
}

// Back 从深入查看返回选择视图
func (p *SearchPage) Back(ctx context.Context, id string) error {
	return p.mutateResults(ctx, id, func(d *ResultsDisplay) error {
		d.Back()
		return nil
	})
}

// NewSearch 清空结果和表单，回到初始状态
func (p *SearchPage) NewSearch(ctx context.Context, id string) error {
	unlock := p.lock(id)
	defer unlock()

	p.stop(id)

	s, err := p.load(ctx, id)
	if err != nil {
		return err
	}
	s.Loading = false
	s.LoadingSince = time.Time{}
	s.Form = models.SearchCriteria{}
	s.ResetResults()
	return p.save(ctx, s)
}

// State 会话快照及派生状态，不取出通知
func (p *SearchPage) State(ctx context.Context, id string) (*models.StateResponseData, error) {
	unlock := p.lock(id)
	defer unlock()

	s, err := p.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.reconcile(s) {
		if err := p.save(ctx, s); err != nil {
			return nil, err
		}
	}

	d := p.display(s)
	results := s.Results
	if results == nil {
		results = []models.ProfileResult{}
	}
	return &models.StateResponseData{
		State:         string(stateOf(s)),
		Form:          s.Form,
		Results:       results,
		Decisions:     d.Decisions(),
		Keys:          d.Keys(),
		View:          d.View(),
		AllDecided:    !d.Empty() && d.AllDecided(),
		SelectedCount: d.SelectedCount(),
		CanDeepDive:   d.CanDeepDive(),
		NoResults:     !s.Loading && s.Searched && d.Empty(),
	}, nil
}

// stop 取消会话的后台请求并停止加载定时器
func (p *SearchPage) stop(id string) {
	rt := p.detach(id)
	if rt == nil {
		return
	}
	rt.cancel()
	rt.loading.Stop()
}

// Teardown 会话被删除或过期：取消其请求并释放本地状态
func (p *SearchPage) Teardown(id string) {
	p.stop(id)
}

// Reap 清理会话已不存在的运行时（如Redis中已过期），返回被清理的ID
func (p *SearchPage) Reap(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	ids := make([]string, 0, len(p.runtimes))
	for id := range p.runtimes {
		ids = append(ids, id)
	}
	p.mu.Unlock()

	reaped := make([]string, 0)
	for _, id := range ids {
		_, err := p.repo.Get(ctx, id)
		if errors.Is(err, repository.ErrSessionNotFound) {
			p.Teardown(id)
			reaped = append(reaped, id)
			continue
		}
		if err != nil {
			return reaped, fmt.Errorf("reap session %s: %w", id, err)
		}
	}
	return reaped, nil
}

// InFlight 当前进行中的搜索数
func (p *SearchPage) InFlight() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.runtimes)
}

// Shutdown 取消所有进行中的搜索并等待后台goroutine退出
func (p *SearchPage) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	ids := make([]string, 0, len(p.runtimes))
	for id := range p.runtimes {
		ids = append(ids, id)
	}
	p.mu.Unlock()
	for _, id := range ids {
		p.stop(id)
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
