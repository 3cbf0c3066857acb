package ringcore

// fakeTransport is an in-memory, synchronous ringcore.Transport for tests:
// Send appends directly to the recipient's inbox.
type fakeTransport struct {
	inboxes map[Address][]string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{inboxes: make(map[Address][]string)}
}

func (f *fakeTransport) Send(_, to Address, frame string) {
	f.inboxes[to] = append(f.inboxes[to], frame)
}

func (f *fakeTransport) Recv(self Address) []string {
	frames := f.inboxes[self]
	f.inboxes[self] = nil
	return frames
}

// fakeStorage is a minimal in-memory ringcore.Storage for tests.
type fakeStorage struct {
	table map[string]StorageEntry
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{table: make(map[string]StorageEntry)}
}

func (s *fakeStorage) Create(key, value string, now int, replica ReplicaType) bool {
	if _, ok := s.table[key]; ok {
		return false
	}
	s.table[key] = StorageEntry{Key: key, Value: value, Time: now, Replica: replica}
	return true
}

func (s *fakeStorage) Read(key string) (string, bool) {
	e, ok := s.table[key]
	if !ok {
		return "", false
	}
	return e.Value, true
}

func (s *fakeStorage) Update(key, value string, now int, replica ReplicaType) bool {
	if _, ok := s.table[key]; !ok {
		return false
	}
	s.table[key] = StorageEntry{Key: key, Value: value, Time: now, Replica: replica}
	return true
}

func (s *fakeStorage) Delete(key string) bool {
	if _, ok := s.table[key]; !ok {
		return false
	}
	delete(s.table, key)
	return true
}

func (s *fakeStorage) IsEmpty() bool { return len(s.table) == 0 }

func (s *fakeStorage) Entries() []StorageEntry {
	out := make([]StorageEntry, 0, len(s.table))
	for _, e := range s.table {
		out = append(out, e)
	}
	return out
}

type logCounts struct {
	createSuccess, createFail int
	readSuccess, readFail     int
	updateSuccess, updateFail int
	deleteSuccess, deleteFail int
}

// fakeLogger records every call for assertions instead of writing anywhere.
// Server-side lines are counted in the embedded logCounts; coordinator-side
// decisions are counted separately in coord.
type fakeLogger struct {
	logCounts
	coord logCounts
}

func (l *fakeLogger) side(coordinatorSide bool) *logCounts {
	if coordinatorSide {
		return &l.coord
	}
	return &l.logCounts
}

func (l *fakeLogger) LogCreateSuccess(_ Address, cs bool, _ int, _, _ string) {
	l.side(cs).createSuccess++
}

func (l *fakeLogger) LogCreateFail(_ Address, cs bool, _ int, _, _ string) {
	l.side(cs).createFail++
}

func (l *fakeLogger) LogReadSuccess(_ Address, cs bool, _ int, _, _ string) {
	l.side(cs).readSuccess++
}

func (l *fakeLogger) LogReadFail(_ Address, cs bool, _ int, _ string) {
	l.side(cs).readFail++
}

func (l *fakeLogger) LogUpdateSuccess(_ Address, cs bool, _ int, _, _ string) {
	l.side(cs).updateSuccess++
}

func (l *fakeLogger) LogUpdateFail(_ Address, cs bool, _ int, _, _ string) {
	l.side(cs).updateFail++
}

func (l *fakeLogger) LogDeleteSuccess(_ Address, cs bool, _ int, _ string) {
	l.side(cs).deleteSuccess++
}

func (l *fakeLogger) LogDeleteFail(_ Address, cs bool, _ int, _ string) {
	l.side(cs).deleteFail++
}

// fakeMembership returns a fixed address list.
type fakeMembership struct {
	addrs []Address
}

func (m *fakeMembership) Members() []Address { return m.addrs }
