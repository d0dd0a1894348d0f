package services

import (
	"sync"
	"time"
)

// DefaultFactInterval 加载提示轮换周期
const DefaultFactInterval = 3 * time.Second

const (
	LoadingHeading = "Searching LinkedIn Profiles"
	LoadingCaption = "Did you know?"
)

// LoadingFacts 加载期间轮换展示的提示
var LoadingFacts = []string{
	"LinkedIn has over 900 million members worldwide.",
	"The average LinkedIn user spends 17 minutes per month on the platform.",
	"LinkedIn is available in over 200 countries and territories.",
	"94% of B2B marketers use LinkedIn for content distribution.",
	"LinkedIn's algorithm prioritizes content with high engagement in the first hour.",
	"The most active time on LinkedIn is Tuesday through Thursday, 10 AM - 12 PM.",
	"LinkedIn profiles with photos receive 21x more profile views.",
	"Companies with complete LinkedIn pages get 30% more weekly views.",
}

// LoadingState 按固定周期循环推进提示下标，Stop之后不残留后台goroutine
type LoadingState struct {
	facts  []string
	period time.Duration

	mu    sync.Mutex
	index int
	stop  chan struct{}
	done  chan struct{}
}

func NewLoadingState(facts []string, period time.Duration) *LoadingState {
	if period <= 0 {
		period = DefaultFactInterval
	}
	return &LoadingState{facts: facts, period: period}
}

// Start 启动定时器，重复调用无副作用
func (l *LoadingState) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stop != nil {
		return
	}
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	go l.run(l.stop, l.done)
}

func (l *LoadingState) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.advance()
		case <-stop:
			return
		}
	}
}

func (l *LoadingState) advance() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.facts) == 0 {
		return
	}
	l.index = (l.index + 1) % len(l.facts)
}

// Stop 取消定时器并等待后台goroutine退出
func (l *LoadingState) Stop() {
	l.mu.Lock()
	stop, done := l.stop, l.done
	l.stop, l.done = nil, nil
	l.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Running 定时器是否在运行
func (l *LoadingState) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stop != nil
}

// Index 当前提示下标
func (l *LoadingState) Index() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.index
}

// Current 当前提示
func (l *LoadingState) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.facts) == 0 {
		return ""
	}
	return l.facts[l.index]
}

// FactAt 根据已加载时长推算提示，用于加载流程不在本进程的会话
func FactAt(facts []string, period, elapsed time.Duration) string {
	if len(facts) == 0 {
		return ""
	}
	if period <= 0 {
		period = DefaultFactInterval
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return facts[int(elapsed/period)%len(facts)]
}
