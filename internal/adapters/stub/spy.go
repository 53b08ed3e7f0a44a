package stub

import (
	"context"
	"fmt"
	"sync"

	"cat-shelter/internal/platform/sentinel"
)

// spy cuenta llamadas por operación y permite inyectar fallas.
// Lo embeben todos los stubs.
type spy struct {
	mu     sync.Mutex
	calls  map[string]int
	faults map[string]fault
}

type fault struct {
	n   int
	err error
}

// Calls devuelve cuántas veces se invocó op (incluye las fallas inyectadas).
func (s *spy) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// TotalCalls suma las llamadas de todas las operaciones.
func (s *spy) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

// FailNext hace que las próximas n llamadas a op fallen con sentinel.ErrUnavailable.
func (s *spy) FailNext(op string, n int) {
	s.inject(op, n, sentinel.ErrUnavailable)
}

// MissNext hace que las próximas n llamadas a op devuelvan sentinel.ErrNotFound,
// como un 404 de la dependencia real.
func (s *spy) MissNext(op string, n int) {
	s.inject(op, n, sentinel.ErrNotFound)
}

func (s *spy) inject(op string, n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.faults == nil {
		s.faults = map[string]fault{}
	}
	s.faults[op] = fault{n: n, err: err}
}

func (s *spy) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *spy) enter(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[op]++

	if f := s.faults[op]; f.n > 0 {
		f.n--
		s.faults[op] = f
		return fmt.Errorf("stub %s: %w", op, f.err)
	}
	return nil
}
