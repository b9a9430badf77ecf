package view

import (
	"context"
	"sync"

	"github.com/zhouzirui/emotion-chat/internal/model/chat"
	"github.com/zhouzirui/emotion-chat/internal/model/user"
	"github.com/zhouzirui/emotion-chat/internal/service/backend"
)

// fakeBackend records calls and returns canned results. When analyzeBlock or
// checkBlock is set, the matching call parks on it until the test closes the
// channel.
type fakeBackend struct {
	mu sync.Mutex

	connected    bool
	analyzeBlock chan struct{}
	checkBlock   chan struct{}

	analyzeResult chat.EmotionResult
	analyzeErr    error
	analyzeCalls  []string

	registerResult user.User
	registerErr    error
	registerCalls  []string

	loginResult user.User
	loginErr    error
	loginCalls  []string

	availability    backend.Availability
	availabilityErr error
	checkCalls      []string
}

func (f *fakeBackend) TestConnection(_ context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeBackend) AnalyzeEmotion(_ context.Context, text string) (chat.EmotionResult, error) {
	f.mu.Lock()
	f.analyzeCalls = append(f.analyzeCalls, text)
	block := f.analyzeBlock
	result, err := f.analyzeResult, f.analyzeErr
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return result, err
}

func (f *fakeBackend) RegisterUser(_ context.Context, nickname string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerCalls = append(f.registerCalls, nickname)
	return f.registerResult, f.registerErr
}

func (f *fakeBackend) LoginUser(_ context.Context, nickname string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls = append(f.loginCalls, nickname)
	return f.loginResult, f.loginErr
}

func (f *fakeBackend) CheckNicknameAvailability(_ context.Context, nickname string) (backend.Availability, error) {
	f.mu.Lock()
	f.checkCalls = append(f.checkCalls, nickname)
	block := f.checkBlock
	result, err := f.availability, f.availabilityErr
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return result, err
}

func (f *fakeBackend) setConnected(connected bool) {
	f.mu.Lock()
	f.connected = connected
	f.mu.Unlock()
}

func (f *fakeBackend) setAnalyze(result chat.EmotionResult, err error) {
	f.mu.Lock()
	f.analyzeResult = result
	f.analyzeErr = err
	f.mu.Unlock()
}

func (f *fakeBackend) analyzeCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.analyzeCalls)
}

func (f *fakeBackend) checkCallsCopy() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.checkCalls...)
}

func (f *fakeBackend) authCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.registerCalls) + len(f.loginCalls)
}
