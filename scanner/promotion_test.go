package scanner

import (
	"errors"
	"io"
	"slices"
	"testing"
	"time"

	"ravenhold-bot/model"
	"ravenhold-bot/testutil"

	"github.com/rs/zerolog"
)

func testConfig() *model.Config {
	return &model.Config{
		AdminRoleID:       "admin",
		OldRoleID:         "old",
		NewRoleID:         "new",
		ChannelID:         "announce",
		JoinTimeThreshold: 24 * time.Hour,
		TimezoneName:      "UTC",
		Location:          time.UTC,
		Prefix:            "!",
		CongratsMessage:   "{mention} promoted",
	}
}

func newTestPromoter(fake *testutil.FakeDiscord, clock *testutil.StubClock) *Promoter {
	return NewPromoter(fake, testConfig(), clock, zerolog.New(io.Discard))
}

func TestPromoter_Run_FailureIsolation(t *testing.T) {
	clock := testutil.FixedClock()
	now := clock.Now()
	fake := testutil.NewFakeDiscord([]string{"old", "new"}, []string{"announce"})
	for _, id := range []string{"1", "2", "3", "4"} {
		fake.AddMember(id, now.Add(-48*time.Hour), "old")
	}
	fake.AddErr["2"] = errors.New("HTTP 500")

	report, err := newTestPromoter(fake, clock).Run("guild", 24*time.Hour)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := Report{Scanned: 4, Eligible: 4, Promoted: 3, Failed: 1}
	if report != want {
		t.Errorf("Run() report = %+v, want %+v", report, want)
	}
	for _, id := range []string{"1", "3", "4"} {
		if roles := fake.MemberRoles(id); !slices.Equal(roles, []string{"new"}) {
			t.Errorf("member %s roles = %v, want [new]", id, roles)
		}
	}

	var notified []string
	for _, msg := range fake.Sent {
		notified = append(notified, msg.Content)
	}
	wantNotified := []string{"<@1> promoted", "<@3> promoted", "<@4> promoted"}
	if !slices.Equal(notified, wantNotified) {
		t.Errorf("notifications = %v, want %v", notified, wantNotified)
	}
}

func TestPromoter_Run_NotifyFailureKeepsTransition(t *testing.T) {
	clock := testutil.FixedClock()
	fake := testutil.NewFakeDiscord([]string{"old", "new"}, []string{"announce"})
	fake.AddMember("1", clock.Now().Add(-48*time.Hour), "old")
	fake.AddMember("2", clock.Now().Add(-48*time.Hour), "old")
	fake.NotifyErr["1"] = errors.New("HTTP 403 Forbidden")

	report, err := newTestPromoter(fake, clock).Run("guild", 24*time.Hour)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Promoted != 2 || report.NotifyFailed != 1 {
		t.Errorf("report = %+v, want 2 promoted and 1 notify failure", report)
	}
	if roles := fake.MemberRoles("1"); !slices.Equal(roles, []string{"new"}) {
		t.Errorf("member 1 roles = %v, want [new]", roles)
	}
}

func TestPromoter_Run_DefaultThresholdScenario(t *testing.T) {
	clock := testutil.FixedClock()
	now := clock.Now()
	fake := testutil.NewFakeDiscord([]string{"old", "new"}, []string{"announce"})
	fake.AddMember("A", now.Add(-48*time.Hour), "old")
	fake.AddMember("B", now.Add(-time.Hour), "old")
	p := newTestPromoter(fake, clock)

	report, err := p.Run("guild", 24*time.Hour)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Promoted != 1 {
		t.Fatalf("Promoted = %d, want 1", report.Promoted)
	}
	if roles := fake.MemberRoles("A"); !slices.Equal(roles, []string{"new"}) {
		t.Errorf("A roles = %v, want [new]", roles)
	}
	if roles := fake.MemberRoles("B"); !slices.Equal(roles, []string{"old"}) {
		t.Errorf("B roles = %v, want untouched [old]", roles)
	}

	report, err = p.Run("guild", time.Hour)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Promoted != 1 {
		t.Errorf("Promoted = %d with a 1h threshold, want 1 (B)", report.Promoted)
	}
	if roles := fake.MemberRoles("B"); !slices.Equal(roles, []string{"new"}) {
		t.Errorf("B roles = %v, want [new]", roles)
	}
}

func TestPromoter_Run_Idempotent(t *testing.T) {
	clock := testutil.FixedClock()
	fake := testutil.NewFakeDiscord([]string{"old", "new"}, []string{"announce"})
	fake.AddMember("1", clock.Now().Add(-48*time.Hour), "old")
	fake.AddMember("2", clock.Now().Add(-72*time.Hour), "old")
	p := newTestPromoter(fake, clock)

	if _, err := p.Run("guild", 24*time.Hour); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	before := fake.MutationCount()

	report, err := p.Run("guild", 24*time.Hour)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if report.Eligible != 0 || report.Promoted != 0 {
		t.Errorf("second run report = %+v, want nothing eligible", report)
	}
	if after := fake.MutationCount(); after != before {
		t.Errorf("second run made %d platform calls, want 0", after-before)
	}
}

func TestPromoter_Run_ListFailure(t *testing.T) {
	fake := testutil.NewFakeDiscord([]string{"old", "new"}, []string{"announce"})
	fake.ListErr = errors.New("HTTP 403 Forbidden")

	if _, err := newTestPromoter(fake, testutil.FixedClock()).Run("guild", 0); err == nil {
		t.Fatal("Run() error = nil, want list failure")
	}
	if fake.MutationCount() != 0 {
		t.Errorf("MutationCount() = %d, want 0", fake.MutationCount())
	}
}

func TestPromoter_Preflight(t *testing.T) {
	tests := []struct {
		name     string
		roles    []string
		channels []string
		wantErr  bool
	}{
		{"all present", []string{"old", "new", "admin"}, []string{"announce"}, false},
		{"missing old role", []string{"new"}, []string{"announce"}, true},
		{"missing new role", []string{"old"}, []string{"announce"}, true},
		{"missing channel", []string{"old", "new"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := testutil.NewFakeDiscord(tt.roles, tt.channels)
			err := newTestPromoter(fake, testutil.FixedClock()).Preflight("guild")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Preflight() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrRoleOrChannelNotFound) {
				t.Errorf("Preflight() error = %v, want ErrRoleOrChannelNotFound", err)
			}
		})
	}
}
