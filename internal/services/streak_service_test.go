package services

import (
	"testing"
	"time"

	"github.com/foliotrack/folio/internal/models"
)

type fakeDayStore struct {
	rows   map[string]models.DailyProgress
	nextID uint
}

func newFakeDayStore() *fakeDayStore {
	return &fakeDayStore{rows: make(map[string]models.DailyProgress), nextID: 1}
}

func (store *fakeDayStore) FindByUserAndDay(userID uint, day time.Time) (models.DailyProgress, bool, error) {
	row, found := store.rows[nominalKey(day)]
	if !found || row.UserID != userID {
		return models.DailyProgress{}, false, nil
	}
	return row, true, nil
}

func (store *fakeDayStore) Create(progress *models.DailyProgress) error {
	progress.ID = store.nextID
	store.nextID++
	store.rows[nominalKey(progress.Date)] = *progress
	return nil
}

func (store *fakeDayStore) Save(progress *models.DailyProgress) error {
	store.rows[nominalKey(progress.Date)] = *progress
	return nil
}

func (store *fakeDayStore) ListByUserRange(userID uint, from time.Time, to time.Time) ([]models.DailyProgress, error) {
	var matched []models.DailyProgress
	for _, row := range store.rows {
		if row.UserID != userID {
			continue
		}
		if row.Date.Before(from) || !row.Date.Before(to) {
			continue
		}
		matched = append(matched, row)
	}
	return matched, nil
}

func (store *fakeDayStore) ListFreezeUsedInRange(userID uint, from time.Time, to time.Time) ([]models.DailyProgress, error) {
	var matched []models.DailyProgress
	for _, row := range store.rows {
		if row.UserID != userID || !row.FreezeUsed {
			continue
		}
		if row.Date.Before(from) || !row.Date.Before(to) {
			continue
		}
		matched = append(matched, row)
	}
	return matched, nil
}

type fakeStreakStore struct {
	records map[uint]models.UserStreak
}

func newFakeStreakStore() *fakeStreakStore {
	return &fakeStreakStore{records: make(map[uint]models.UserStreak)}
}

func (store *fakeStreakStore) FindByUser(userID uint) (models.UserStreak, bool, error) {
	record, found := store.records[userID]
	return record, found, nil
}

func (store *fakeStreakStore) Save(streak *models.UserStreak) error {
	store.records[streak.UserID] = *streak
	return nil
}

type fakeAtomicStore struct {
	days    *fakeDayStore
	streaks *fakeStreakStore
}

func (store *fakeAtomicStore) RunAtomically(_ uint, fn func(days StreakDayStore, streaks StreakStateStore) error) error {
	return fn(store.days, store.streaks)
}

type streakFixture struct {
	service  *StreakService
	days     *fakeDayStore
	streaks  *fakeStreakStore
	sessions *stubSessionReader
}

func newStreakFixture(totalSeconds int64, goalMinutes *int) *streakFixture {
	days := newFakeDayStore()
	streaks := newFakeStreakStore()
	sessions := &stubSessionReader{totalSeconds: totalSeconds}
	users := &stubUserReader{user: models.User{ID: 1, DailyGoalMinutes: goalMinutes}}
	progress := NewProgressService(sessions, users)

	return &streakFixture{
		service:  NewStreakService(progress, &fakeAtomicStore{days: days, streaks: streaks}, days, streaks, sessions, users),
		days:     days,
		streaks:  streaks,
		sessions: sessions,
	}
}

func TestFinalizeDayFirstGoalMet(t *testing.T) {
	fixture := newStreakFixture(1800, goalOf(30))
	day := nominal(t, "2026-02-06")

	result, err := fixture.service.FinalizeDay(1, day, time.UTC)
	if err != nil {
		t.Fatalf("FinalizeDay() failed: %v", err)
	}

	if !result.Advanced || result.Streak.CurrentStreak != 1 {
		t.Fatalf("expected a first advance to streak 1, got %+v", result)
	}
	if result.Progress.MinutesRead != 30 || !result.Progress.GoalMet {
		t.Fatalf("expected 30 minutes with goal met, got %+v", result.Progress)
	}

	row, found, _ := fixture.days.FindByUserAndDay(1, day)
	if !found || row.MinutesRead != 30 || !row.GoalMet {
		t.Fatalf("expected a persisted progress row, got %+v found=%v", row, found)
	}
	if _, found, _ := fixture.streaks.FindByUser(1); !found {
		t.Fatal("expected a persisted streak record")
	}
}

func TestFinalizeDayIsIdempotent(t *testing.T) {
	fixture := newStreakFixture(1800, goalOf(30))
	day := nominal(t, "2026-02-06")

	if _, err := fixture.service.FinalizeDay(1, day, time.UTC); err != nil {
		t.Fatalf("first FinalizeDay() failed: %v", err)
	}
	second, err := fixture.service.FinalizeDay(1, day, time.UTC)
	if err != nil {
		t.Fatalf("second FinalizeDay() failed: %v", err)
	}

	if second.Advanced {
		t.Fatal("expected the rerun to be a no-op advance")
	}
	stored, _, _ := fixture.streaks.FindByUser(1)
	if stored.CurrentStreak != 1 {
		t.Fatalf("expected streak to stay at 1 after rerun, got %d", stored.CurrentStreak)
	}
}

func TestFinalizeDayGoalNotMetLeavesStreakAlone(t *testing.T) {
	fixture := newStreakFixture(600, goalOf(30))
	fixture.streaks.records[1] = models.UserStreak{UserID: 1, CurrentStreak: 4, LongestStreak: 4, LastGoalMetDate: nominalPtr(t, "2026-02-05")}
	day := nominal(t, "2026-02-06")

	result, err := fixture.service.FinalizeDay(1, day, time.UTC)
	if err != nil {
		t.Fatalf("FinalizeDay() failed: %v", err)
	}

	if result.Advanced {
		t.Fatal("expected no advance when the goal was missed")
	}
	stored, _, _ := fixture.streaks.FindByUser(1)
	if stored.CurrentStreak != 4 {
		t.Fatalf("expected streak untouched at 4, got %d", stored.CurrentStreak)
	}
	row, found, _ := fixture.days.FindByUserAndDay(1, day)
	if !found || row.GoalMet || row.MinutesRead != 10 {
		t.Fatalf("expected a goal-unmet row with 10 minutes, got %+v found=%v", row, found)
	}
}

func TestFinalizeDayExtendsConsecutiveStreak(t *testing.T) {
	fixture := newStreakFixture(1800, goalOf(30))
	fixture.streaks.records[1] = models.UserStreak{UserID: 1, CurrentStreak: 5, LongestStreak: 5, LastGoalMetDate: nominalPtr(t, "2026-02-05")}

	result, err := fixture.service.FinalizeDay(1, nominal(t, "2026-02-06"), time.UTC)
	if err != nil {
		t.Fatalf("FinalizeDay() failed: %v", err)
	}

	if result.Streak.CurrentStreak != 6 || result.Streak.LongestStreak != 6 {
		t.Fatalf("expected streak 6/6, got %d/%d", result.Streak.CurrentStreak, result.Streak.LongestStreak)
	}
}

func TestFinalizeDayResetsAcrossUncoveredGap(t *testing.T) {
	fixture := newStreakFixture(1800, goalOf(30))
	fixture.streaks.records[1] = models.UserStreak{UserID: 1, CurrentStreak: 9, LongestStreak: 9, LastGoalMetDate: nominalPtr(t, "2026-02-01")}

	result, err := fixture.service.FinalizeDay(1, nominal(t, "2026-02-06"), time.UTC)
	if err != nil {
		t.Fatalf("FinalizeDay() failed: %v", err)
	}

	if result.Streak.CurrentStreak != 1 {
		t.Fatalf("expected a reset to 1, got %d", result.Streak.CurrentStreak)
	}
	if result.Streak.LongestStreak != 9 {
		t.Fatalf("expected longest streak preserved at 9, got %d", result.Streak.LongestStreak)
	}
}

func TestFinalizeDaySpendsFreezeAndMarksGapRow(t *testing.T) {
	fixture := newStreakFixture(1800, goalOf(30))
	fixture.streaks.records[1] = models.UserStreak{UserID: 1, CurrentStreak: 5, LongestStreak: 5, LastGoalMetDate: nominalPtr(t, "2026-02-05"), FreezeCount: 1}

	result, err := fixture.service.FinalizeDay(1, nominal(t, "2026-02-07"), time.UTC)
	if err != nil {
		t.Fatalf("FinalizeDay() failed: %v", err)
	}

	if result.Streak.CurrentStreak != 6 || result.FreezesSpent != 1 {
		t.Fatalf("expected streak 6 with one freeze spent, got %+v", result)
	}
	if result.Streak.FreezeCount != 0 {
		t.Fatalf("expected an empty freeze balance, got %d", result.Streak.FreezeCount)
	}

	gapRow, found, _ := fixture.days.FindByUserAndDay(1, nominal(t, "2026-02-06"))
	if !found || !gapRow.FreezeUsed {
		t.Fatalf("expected the bridged day marked freeze-used, got %+v found=%v", gapRow, found)
	}
	if gapRow.GoalMet || gapRow.MinutesRead != 0 {
		t.Fatalf("expected the bridged day to stay goal-unmet with zero minutes, got %+v", gapRow)
	}
}

func TestFinalizeDayHonorsPreviouslyCoveredGapDays(t *testing.T) {
	fixture := newStreakFixture(1800, goalOf(30))
	fixture.streaks.records[1] = models.UserStreak{UserID: 1, CurrentStreak: 5, LongestStreak: 5, LastGoalMetDate: nominalPtr(t, "2026-02-05"), FreezeCount: 0}
	fixture.days.rows["2026-02-06"] = models.DailyProgress{ID: 99, UserID: 1, Date: nominal(t, "2026-02-06"), FreezeUsed: true}

	result, err := fixture.service.FinalizeDay(1, nominal(t, "2026-02-07"), time.UTC)
	if err != nil {
		t.Fatalf("FinalizeDay() failed: %v", err)
	}

	if result.Streak.CurrentStreak != 6 || result.FreezesSpent != 0 {
		t.Fatalf("expected streak 6 with no fresh spend, got %+v", result)
	}
}

func TestFinalizeDayBackfillKeepsRowButNotStreak(t *testing.T) {
	fixture := newStreakFixture(1800, goalOf(30))
	fixture.streaks.records[1] = models.UserStreak{UserID: 1, CurrentStreak: 5, LongestStreak: 5, LastGoalMetDate: nominalPtr(t, "2026-02-05")}
	backfilled := nominal(t, "2026-01-01")

	result, err := fixture.service.FinalizeDay(1, backfilled, time.UTC)
	if err != nil {
		t.Fatalf("FinalizeDay() failed: %v", err)
	}

	if result.Advanced {
		t.Fatal("expected a backfilled past day to not advance the streak")
	}
	row, found, _ := fixture.days.FindByUserAndDay(1, backfilled)
	if !found || row.MinutesRead != 30 || !row.GoalMet {
		t.Fatalf("expected the backfilled progress row persisted, got %+v found=%v", row, found)
	}
	stored, _, _ := fixture.streaks.FindByUser(1)
	if stored.CurrentStreak != 5 || !stored.LastGoalMetDate.Equal(nominal(t, "2026-02-05")) {
		t.Fatalf("expected the streak untouched, got %+v", stored)
	}
}

func TestCheckStreakStatusZeroWithoutHistory(t *testing.T) {
	fixture := newStreakFixture(0, goalOf(30))

	status, err := fixture.service.CheckStreakStatus(1, time.Date(2026, 2, 6, 12, 0, 0, 0, time.UTC), time.UTC)
	if err != nil {
		t.Fatalf("CheckStreakStatus() failed: %v", err)
	}

	if status.CurrentStreak != 0 || status.IsAtRisk || status.MissedDays != 0 || status.LastGoalMetDate != nil {
		t.Fatalf("expected the zero status, got %+v", status)
	}
}

func TestCheckStreakStatusSafeWithinOneDay(t *testing.T) {
	fixture := newStreakFixture(0, goalOf(30))
	fixture.streaks.records[1] = models.UserStreak{UserID: 1, CurrentStreak: 5, LongestStreak: 5, LastGoalMetDate: nominalPtr(t, "2026-02-05"), FreezeCount: 2}

	for _, now := range []time.Time{
		time.Date(2026, 2, 5, 23, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 6, 8, 0, 0, 0, time.UTC),
	} {
		status, err := fixture.service.CheckStreakStatus(1, now, time.UTC)
		if err != nil {
			t.Fatalf("CheckStreakStatus() failed: %v", err)
		}
		if status.IsAtRisk || status.MissedDays != 0 {
			t.Fatalf("expected a safe streak at %s, got %+v", now, status)
		}
		if status.CurrentStreak != 5 || status.FreezeCount != 2 {
			t.Fatalf("expected streak fields echoed, got %+v", status)
		}
	}
}

func TestCheckStreakStatusAtRiskCountsMissedDays(t *testing.T) {
	fixture := newStreakFixture(0, goalOf(30))
	fixture.streaks.records[1] = models.UserStreak{UserID: 1, CurrentStreak: 5, LongestStreak: 5, LastGoalMetDate: nominalPtr(t, "2026-02-05")}

	status, err := fixture.service.CheckStreakStatus(1, time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC), time.UTC)
	if err != nil {
		t.Fatalf("CheckStreakStatus() failed: %v", err)
	}

	if !status.IsAtRisk {
		t.Fatal("expected the streak to be at risk")
	}
	if status.MissedDays != 3 {
		t.Fatalf("expected 3 missed days, got %d", status.MissedDays)
	}
}

func TestCheckStreakStatusEchoesFreezeUsedToday(t *testing.T) {
	fixture := newStreakFixture(1800, goalOf(30))
	fixture.streaks.records[1] = models.UserStreak{UserID: 1, CurrentStreak: 5, LongestStreak: 5, LastGoalMetDate: nominalPtr(t, "2026-02-05"), FreezeCount: 1}

	if _, err := fixture.service.FinalizeDay(1, nominal(t, "2026-02-07"), time.UTC); err != nil {
		t.Fatalf("FinalizeDay() failed: %v", err)
	}

	status, err := fixture.service.CheckStreakStatus(1, time.Date(2026, 2, 7, 22, 0, 0, 0, time.UTC), time.UTC)
	if err != nil {
		t.Fatalf("CheckStreakStatus() failed: %v", err)
	}
	if !status.FreezeUsedToday {
		t.Fatal("expected the freeze-bridged advance to surface in the status")
	}
}

func TestCheckStreakStatusFreezeCoveredYesterdayIsSafe(t *testing.T) {
	fixture := newStreakFixture(0, goalOf(30))
	fixture.streaks.records[1] = models.UserStreak{UserID: 1, CurrentStreak: 6, LongestStreak: 6, LastGoalMetDate: nominalPtr(t, "2026-02-05")}
	fixture.days.rows["2026-02-06"] = models.DailyProgress{ID: 7, UserID: 1, Date: nominal(t, "2026-02-06"), FreezeUsed: true}

	status, err := fixture.service.CheckStreakStatus(1, time.Date(2026, 2, 7, 9, 0, 0, 0, time.UTC), time.UTC)
	if err != nil {
		t.Fatalf("CheckStreakStatus() failed: %v", err)
	}

	if status.IsAtRisk || status.MissedDays != 0 {
		t.Fatalf("expected a freeze-covered gap to read safe, got %+v", status)
	}
}

func TestGetDayDetailAbsentDayReadsAsZero(t *testing.T) {
	fixture := newStreakFixture(0, goalOf(45))
	fixture.sessions.sessionCount = 0

	detail, err := fixture.service.GetDayDetail(1, nominal(t, "2026-01-15"), time.UTC)
	if err != nil {
		t.Fatalf("GetDayDetail() failed: %v", err)
	}

	if detail.MinutesRead != 0 || detail.GoalMet || detail.FreezeUsed || detail.SessionCount != 0 {
		t.Fatalf("expected a zero detail, got %+v", detail)
	}
	if detail.GoalMinutes == nil || *detail.GoalMinutes != 45 {
		t.Fatalf("expected the current goal echoed, got %v", detail.GoalMinutes)
	}
	if !detail.Date.Equal(nominal(t, "2026-01-15")) {
		t.Fatalf("expected the requested date, got %s", detail.Date)
	}
}

func TestGetDayDetailMergesStoredRowAndLiveSessions(t *testing.T) {
	fixture := newStreakFixture(0, goalOf(30))
	fixture.sessions.sessionCount = 3
	fixture.days.rows["2026-02-06"] = models.DailyProgress{ID: 4, UserID: 1, Date: nominal(t, "2026-02-06"), MinutesRead: 42, GoalMet: true, FreezeUsed: false}

	detail, err := fixture.service.GetDayDetail(1, nominal(t, "2026-02-06"), time.UTC)
	if err != nil {
		t.Fatalf("GetDayDetail() failed: %v", err)
	}

	if detail.MinutesRead != 42 || !detail.GoalMet {
		t.Fatalf("expected the stored row echoed, got %+v", detail)
	}
	if detail.SessionCount != 3 {
		t.Fatalf("expected 3 sessions, got %d", detail.SessionCount)
	}
}
