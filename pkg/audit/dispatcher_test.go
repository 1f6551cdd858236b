package audit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/officelife/pkg/taskqueue"
)

var (
	companyID = uuid.MustParse("6c0d6a47-3c39-4a41-a5a4-5b2c4e8c1e11")
	author    = Author{ID: 1, Name: "Dwight Schrute"}
	auditedAt = time.Date(2018, time.January, 1, 9, 30, 0, 0, time.UTC)
)

type failingQueue struct {
	taskqueue.Queue
}

func (failingQueue) Push(context.Context, string, []byte) error {
	return errors.New("redis down")
}

// stalledQueue holds every push until release is closed.
type stalledQueue struct {
	*taskqueue.MemoryQueue
	release chan struct{}
}

func (q stalledQueue) Push(ctx context.Context, topic string, payload []byte) error {
	select {
	case <-q.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	return q.MemoryQueue.Push(ctx, topic, payload)
}

type memoryStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]Record
	order   []uuid.UUID
}

func (s *memoryStore) Append(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records == nil {
		s.records = map[uuid.UUID]Record{}
	}
	if _, ok := s.records[rec.ID]; ok {
		return nil
	}
	s.records[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	return nil
}

func flush(t *testing.T, d *Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))
}

func popRecord(t *testing.T, q taskqueue.Queue, s Stream) Record {
	t.Helper()
	body, ok, err := q.Claim(context.Background(), s.Topic(), 0)
	require.NoError(t, err)
	require.True(t, ok)
	var rec Record
	require.NoError(t, json.Unmarshal(body, &rec))
	return rec
}

func TestDispatcher_RoutesStreamsToTopics(t *testing.T) {
	q := taskqueue.NewMemoryQueue()
	d := NewDispatcher(q, DispatcherOptions{})

	d.Record(context.Background(),
		ForCompany(companyID, author, auditedAt, TimesheetEvent{
			Tag: ActionTimesheetApproved, EmployeeID: 7, TimesheetID: 3,
			StartedAt: "Jan 01, 2018", EndedAt: "Jan 07, 2018",
		}),
		ForEmployee(companyID, 7, author, auditedAt, TimesheetEvent{
			Tag: ActionTimesheetApproved, TimesheetID: 3,
			StartedAt: "Jan 01, 2018", EndedAt: "Jan 07, 2018",
		}),
	)
	flush(t, d)

	company := popRecord(t, q, StreamCompany)
	require.Equal(t, ActionTimesheetApproved, company.Action)
	require.NotEqual(t, uuid.Nil, company.ID)
	require.Equal(t, author.Name, company.AuthorName)
	require.JSONEq(t,
		`{"employee_id":7,"timesheet_id":3,"started_at":"Jan 01, 2018","ended_at":"Jan 07, 2018"}`,
		string(company.Objects),
	)

	employee := popRecord(t, q, StreamEmployee)
	require.EqualValues(t, 7, employee.EmployeeID)
	require.JSONEq(t,
		`{"timesheet_id":3,"started_at":"Jan 01, 2018","ended_at":"Jan 07, 2018"}`,
		string(employee.Objects),
	)
	require.NotEqual(t, company.ID, employee.ID)
}

func TestDispatcher_PreservesOrderWithinStream(t *testing.T) {
	q := taskqueue.NewMemoryQueue()
	d := NewDispatcher(q, DispatcherOptions{})

	d.Record(context.Background(), ForEmployee(companyID, 7, author, auditedAt, TwitterSet{Twitter: "dwight"}))
	d.Record(context.Background(), ForEmployee(companyID, 7, author, auditedAt, TwitterReset{}))
	flush(t, d)

	require.Equal(t, ActionTwitterSet, popRecord(t, q, StreamEmployee).Action)
	require.Equal(t, ActionTwitterReset, popRecord(t, q, StreamEmployee).Action)
}

func TestDispatcher_SurvivesCancelledCaller(t *testing.T) {
	q := taskqueue.NewMemoryQueue()
	d := NewDispatcher(q, DispatcherOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Record(ctx, ForCompany(companyID, author, auditedAt, CompanyNewsCreated{NewsID: 1, Title: "Hi"}))
	flush(t, d)

	require.Equal(t, ActionCompanyNewsCreated, popRecord(t, q, StreamCompany).Action)
}

func TestDispatcher_PushFailureIsSwallowed(t *testing.T) {
	d := NewDispatcher(failingQueue{}, DispatcherOptions{PushTimeout: time.Millisecond})

	require.NotPanics(t, func() {
		d.Record(context.Background(), ForCompany(companyID, author, auditedAt, ProjectClosed{ProjectID: 1, ProjectName: "Infinity"}))
	})
	flush(t, d)
}

func TestDispatcher_DropsInvalidEntries(t *testing.T) {
	q := taskqueue.NewMemoryQueue()
	d := NewDispatcher(q, DispatcherOptions{})

	d.Record(context.Background(),
		ForEmployee(companyID, 0, author, auditedAt, TwitterReset{}),
		ForCompany(uuid.Nil, author, auditedAt, TwitterReset{}),
		Entry{Stream: StreamCompany, CompanyID: companyID},
	)
	flush(t, d)

	n, err := q.Len(context.Background(), StreamCompany.Topic())
	require.NoError(t, err)
	require.Zero(t, n)
	n, err = q.Len(context.Background(), StreamEmployee.Topic())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestHandler_AppendsOnceAcrossRedelivery(t *testing.T) {
	q := taskqueue.NewMemoryQueue()
	d := NewDispatcher(q, DispatcherOptions{})
	store := &memoryStore{}

	d.Record(context.Background(), ForCompany(companyID, author, auditedAt, EmployeeImportCompleted{ImportJobID: 4, NumberOfEmployees: 12}))
	flush(t, d)
	body, ok, err := q.Claim(context.Background(), StreamCompany.Topic(), 0)
	require.NoError(t, err)
	require.True(t, ok)

	h := Handler(store)
	require.NoError(t, h(context.Background(), body))
	require.NoError(t, h(context.Background(), body))

	require.Len(t, store.order, 1)
	rec := store.records[store.order[0]]
	require.JSONEq(t, `{"import_job_id":4,"number_of_employees":12}`, string(rec.Objects))
}

func TestHandler_MalformedPayloadIsPermanent(t *testing.T) {
	q := taskqueue.NewMemoryQueue()
	require.NoError(t, q.Push(context.Background(), StreamCompany.Topic(), []byte("{")))

	w, err := taskqueue.NewWorker(q, taskqueue.WorkerOptions{MaxAttempts: 5, MaxBackoff: time.Millisecond})
	require.NoError(t, err)
	store := &memoryStore{}
	Register(w, store)

	require.NoError(t, w.Drain(context.Background()))
	require.Empty(t, store.order)
}

func TestWorker_DrainsBothStreams(t *testing.T) {
	q := taskqueue.NewMemoryQueue()
	d := NewDispatcher(q, DispatcherOptions{})
	store := &memoryStore{}

	w, err := taskqueue.NewWorker(q, taskqueue.WorkerOptions{})
	require.NoError(t, err)
	Register(w, store)

	d.Record(context.Background(),
		ForCompany(companyID, author, auditedAt, EmployeeAdded{EmployeeID: 2, FirstName: "Jim", LastName: "Halpert"}),
		ForEmployee(companyID, 2, author, auditedAt, EmployeeCreated{}),
	)
	flush(t, d)
	require.NoError(t, w.Drain(context.Background()))
	require.Len(t, store.order, 2)
}

func TestDispatcher_RecordDoesNotWaitForQueue(t *testing.T) {
	q := stalledQueue{MemoryQueue: taskqueue.NewMemoryQueue(), release: make(chan struct{})}
	d := NewDispatcher(q, DispatcherOptions{PushTimeout: time.Minute})

	returned := make(chan struct{})
	go func() {
		d.Record(context.Background(),
			ForCompany(companyID, author, auditedAt, CompanyNewsCreated{NewsID: 1, Title: "One"}),
			ForCompany(companyID, author, auditedAt, CompanyNewsCreated{NewsID: 2, Title: "Two"}),
		)
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on the queue")
	}

	close(q.release)
	flush(t, d)
	require.JSONEq(t, `{"company_news_id":1,"company_news_title":"One"}`, string(popRecord(t, q, StreamCompany).Objects))
	require.JSONEq(t, `{"company_news_id":2,"company_news_title":"Two"}`, string(popRecord(t, q, StreamCompany).Objects))
}

func TestDispatcher_FullBufferDrops(t *testing.T) {
	q := stalledQueue{MemoryQueue: taskqueue.NewMemoryQueue(), release: make(chan struct{})}
	d := NewDispatcher(q, DispatcherOptions{BufferSize: 1, PushTimeout: time.Minute})

	for i := uint(1); i <= 5; i++ {
		d.Record(context.Background(), ForCompany(companyID, author, auditedAt, ProjectClosed{ProjectID: i, ProjectName: "Infinity"}))
	}
	close(q.release)
	flush(t, d)

	n, err := q.Len(context.Background(), StreamCompany.Topic())
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, int64(1))
	require.LessOrEqual(t, n, int64(2))
}

func TestDispatcher_RecordAfterCloseIsIgnored(t *testing.T) {
	q := taskqueue.NewMemoryQueue()
	d := NewDispatcher(q, DispatcherOptions{})
	flush(t, d)

	require.NotPanics(t, func() {
		d.Record(context.Background(), ForCompany(companyID, author, auditedAt, ProjectClosed{ProjectID: 1, ProjectName: "Infinity"}))
	})
	n, err := q.Len(context.Background(), StreamCompany.Topic())
	require.NoError(t, err)
	require.Zero(t, n)
}
