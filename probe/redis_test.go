package probe

import (
	"context"
	"errors"
	"testing"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jonwraymond/canary/health"
)

type fakeRedis struct {
	reply string
	err   error
}

func (f fakeRedis) Ping(ctx context.Context) *goredis.StatusCmd {
	return goredis.NewStatusResult(f.reply, f.err)
}

func TestRedis_Check(t *testing.T) {
	tests := []struct {
		name   string
		client fakeRedis
		want   health.Status
	}{
		{"pong", fakeRedis{reply: "PONG"}, health.StatusHealthy},
		{"down", fakeRedis{err: errors.New("dial tcp: i/o timeout")}, health.StatusCritical},
		{"odd reply", fakeRedis{reply: "LOADING"}, health.StatusDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Redis("sessions", tt.client).Check(context.Background())
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if result.Status != tt.want {
				t.Errorf("Status = %v, want %v (%s)", result.Status, tt.want, result.Text)
			}
		})
	}
}

func TestRedis_Descriptor(t *testing.T) {
	d := Redis("sessions", fakeRedis{}, health.WithImportance(health.ImportanceManageable)).Descriptor()

	if d.Kind != health.KindCache || d.Importance != health.ImportanceManageable {
		t.Errorf("Descriptor() = %+v, want CACHE MANAGEABLE", d)
	}
}

func TestRedis_RealClientUnreachable(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	result, err := Redis("sessions", client).Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if result.Status != health.StatusCritical {
		t.Errorf("Status = %v, want CRITICAL", result.Status)
	}
}
