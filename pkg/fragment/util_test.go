package fragment

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func randBytes(t testing.TB, n int) []byte {
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

func writeSource(t testing.TB, dir, name string, data []byte) string {
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func writeFragment(t testing.TB, dir, name string, seq uint32, payload []byte) string {
	hdr := EncodeHeader(seq)
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, append(hdr[:], payload...), 0o600))
	return p
}

func readFragment(t testing.TB, p string) (uint32, []byte) {
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(b), HeaderSize)
	return DecodeHeader([HeaderSize]byte(b[:HeaderSize])), b[HeaderSize:]
}

type testMetrics struct {
	mtx        sync.Mutex
	fragments  map[string]int
	bytes      map[string]int64
	operations map[string][]bool
}

func newTestMetrics() *testMetrics {
	return &testMetrics{
		fragments:  make(map[string]int),
		bytes:      make(map[string]int64),
		operations: make(map[string][]bool),
	}
}

func (m *testMetrics) AddFragments(op string, n int) {
	m.mtx.Lock()
	m.fragments[op] += n
	m.mtx.Unlock()
}

func (m *testMetrics) AddPayloadBytes(op string, n int64) {
	m.mtx.Lock()
	m.bytes[op] += n
	m.mtx.Unlock()
}

func (m *testMetrics) ObserveOperation(op string, _ time.Duration, success bool) {
	m.mtx.Lock()
	m.operations[op] = append(m.operations[op], success)
	m.mtx.Unlock()
}
