package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

// TestCircuitBreaker_ClosedState 测试关闭状态（正常）
func TestCircuitBreaker_ClosedState(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	for i := 0; i < 10; i++ {
		err := cb.Execute(func() error {
			return nil
		})
		if err != nil {
			t.Fatalf("期望成功，实际失败: %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态为CLOSED，实际%s", cb.State())
	}

	counts := cb.Counts()
	if counts.TotalSuccesses != 10 {
		t.Errorf("期望成功10次，实际%d次", counts.TotalSuccesses)
	}
}

// TestCircuitBreaker_OpenState 测试打开状态（熔断）
func TestCircuitBreaker_OpenState(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	// 连续5次失败触发熔断
	for i := 0; i < 5; i++ {
		_ = cb.Execute(func() error {
			return errors.New("redis: connection refused")
		})
	}

	if cb.State() != StateOpen {
		t.Errorf("期望状态为OPEN，实际%s", cb.State())
	}

	// 熔断后的请求应该快速失败，不调用实际函数
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})

	if err != ErrOpenState {
		t.Errorf("期望返回ErrOpenState，实际%v", err)
	}

	if called {
		t.Error("熔断器打开时不应该调用实际函数")
	}
}

// TestCircuitBreaker_HalfOpenState 测试半开状态（探测恢复）
func TestCircuitBreaker_HalfOpenState(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     100 * time.Millisecond, // 短超时方便测试
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error {
			return errors.New("fail")
		})
	}

	if cb.State() != StateOpen {
		t.Fatalf("期望状态为OPEN，实际%s", cb.State())
	}

	// 等待超时，转为半开状态
	time.Sleep(150 * time.Millisecond)

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})

	if err != nil {
		t.Errorf("半开状态第一次请求期望成功，实际%v", err)
	}

	if !called {
		t.Error("半开状态应该允许请求通过")
	}

	// 探测成功后应该转为CLOSED
	if cb.State() != StateClosed {
		t.Errorf("期望状态转为CLOSED，实际%s", cb.State())
	}
}

// TestCircuitBreaker_HalfOpenToOpen 测试半开状态失败后转回打开
func TestCircuitBreaker_HalfOpenToOpen(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     100 * time.Millisecond,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error {
			return errors.New("fail")
		})
	}

	time.Sleep(150 * time.Millisecond)

	// 半开状态下探测仍然失败
	_ = cb.Execute(func() error {
		return errors.New("still fail")
	})

	if cb.State() != StateOpen {
		t.Errorf("期望状态转回OPEN，实际%s", cb.State())
	}
}

// TestCircuitBreaker_StateChangeCallback 测试状态变化回调
func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	stateChanges := make([]string, 0)

	cb := NewCircuitBreaker("test", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     100 * time.Millisecond,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	cb.SetStateChangeCallback(func(name string, from State, to State) {
		stateChanges = append(stateChanges, from.String()+"->"+to.String())
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error {
			return errors.New("fail")
		})
	}

	time.Sleep(150 * time.Millisecond)
	_ = cb.Execute(func() error {
		return nil
	})

	expectedChanges := []string{
		"CLOSED->OPEN",
		"OPEN->HALF_OPEN",
		"HALF_OPEN->CLOSED",
	}

	if len(stateChanges) != len(expectedChanges) {
		t.Errorf("期望%d次状态变化，实际%d次: %v", len(expectedChanges), len(stateChanges), stateChanges)
	}

	for i, expected := range expectedChanges {
		if i >= len(stateChanges) {
			break
		}
		if stateChanges[i] != expected {
			t.Errorf("第%d次状态变化期望%s，实际%s", i, expected, stateChanges[i])
		}
	}
}

// TestCircuitBreaker_FailureRate 测试基于失败率的熔断
func TestCircuitBreaker_FailureRate(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		MaxRequests: 3,
		Interval:    1 * time.Hour, // 长时间窗口，避免统计被重置
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.Requests >= 10 && counts.FailureRate() > 0.5
		},
	})

	// 10次请求：4次成功，6次失败（失败率60%）
	for i := 0; i < 10; i++ {
		index := i
		_ = cb.Execute(func() error {
			if index < 4 {
				return nil
			}
			return errors.New("fail")
		})
	}

	if cb.State() != StateOpen {
		t.Errorf("期望状态为OPEN（失败率超过50%%），实际%s", cb.State())
	}
}

// mockBlacklistStore 模拟Token黑名单存储(Redis)
type mockBlacklistStore struct {
	failCount int
	callCount int
}

func (s *mockBlacklistStore) IsInBlacklist(token string) (bool, error) {
	s.callCount++
	if s.callCount <= s.failCount {
		return false, errors.New("redis: connection refused")
	}
	return false, nil
}

// TestCircuitBreaker_BlacklistDegradation 模拟认证中间件的黑名单降级场景
// Redis故障连续5次后熔断，后续请求快速失败（中间件据此降级为仅验签）；
// Redis恢复后熔断器经半开探测回到关闭状态
func TestCircuitBreaker_BlacklistDegradation(t *testing.T) {
	store := &mockBlacklistStore{
		failCount: 5, // 前5次调用失败
	}

	cb := NewCircuitBreaker("redis-blacklist", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     200 * time.Millisecond,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	cb.SetStateChangeCallback(func(name string, from State, to State) {
		t.Logf("[%s] 状态变化: %s -> %s", name, from, to)
	})

	// 模拟10次认证请求
	degraded := 0
	for i := 1; i <= 10; i++ {
		err := cb.Execute(func() error {
			_, err := store.IsInBlacklist("token")
			return err
		})

		if err == ErrOpenState {
			degraded++
		}
	}

	// 前5次真实失败触发熔断，6-10次快速失败走降级
	if store.callCount != 5 {
		t.Errorf("期望实际调用Redis 5次，实际%d次", store.callCount)
	}
	if degraded != 5 {
		t.Errorf("期望5次降级，实际%d次", degraded)
	}

	// 等待熔断器超时，半开探测成功后恢复
	time.Sleep(250 * time.Millisecond)

	err := cb.Execute(func() error {
		_, err := store.IsInBlacklist("token")
		return err
	})
	if err != nil {
		t.Errorf("半开状态下期望成功，实际失败: %v", err)
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态恢复为CLOSED，实际%s", cb.State())
	}
}

// BenchmarkCircuitBreaker 性能基准测试
func BenchmarkCircuitBreaker(b *testing.B) {
	cb := NewCircuitBreaker("bench", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cb.Execute(func() error {
			return nil
		})
	}
}
