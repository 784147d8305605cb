package ai

import "github.com/idl3o/tasern-3-sub001/internal/game"

const memoryWindow = 8

// turnRecord stores one past decision and, once the following call observes
// the board again, the realized outcome of that decision.
type turnRecord struct {
	Action   game.Action
	Score    float64
	Outcome  float64
	Resolved bool
}

// boardSnapshot is the minimal measurement needed to judge how a decision
// worked out: castle pressure and card presence for both sides.
type boardSnapshot struct {
	ownCastle, enemyCastle int
	ownCards, enemyCards   int
	taken                  bool
}

// Memory is the rolling record of recent decisions feeding the
// self-assessment step.
type Memory struct {
	records []turnRecord
	last    boardSnapshot
}

func NewMemory() *Memory {
	return &Memory{records: make([]turnRecord, 0, memoryWindow)}
}

// Observe measures the board and resolves the previous record's outcome:
// positive when the position improved since the last decision, negative when
// it degraded.
func (m *Memory) Observe(ownCastle, enemyCastle, ownCards, enemyCards int) {
	if m.last.taken && len(m.records) > 0 {
		lastIdx := len(m.records) - 1
		if !m.records[lastIdx].Resolved {
			castleSwing := float64((ownCastle - m.last.ownCastle) - (enemyCastle - m.last.enemyCastle))
			cardSwing := float64((ownCards - m.last.ownCards) - (enemyCards - m.last.enemyCards))
			m.records[lastIdx].Outcome = castleSwing + 2.0*cardSwing
			m.records[lastIdx].Resolved = true
		}
	}
	m.last = boardSnapshot{ownCastle: ownCastle, enemyCastle: enemyCastle, ownCards: ownCards, enemyCards: enemyCards, taken: true}
}

// Record appends the chosen action, evicting the oldest record past the
// window.
func (m *Memory) Record(a game.Action, score float64) {
	m.records = append(m.records, turnRecord{Action: a, Score: score})
	if len(m.records) > memoryWindow {
		m.records = m.records[1:]
	}
}

// SuccessRate returns the share of resolved decisions with a non-negative
// outcome, or 0.5 when there is nothing to judge yet.
func (m *Memory) SuccessRate() float64 {
	resolved, good := 0, 0
	for _, r := range m.records {
		if !r.Resolved {
			continue
		}
		resolved++
		if r.Outcome >= 0 {
			good++
		}
	}
	if resolved == 0 {
		return 0.5
	}
	return float64(good) / float64(resolved)
}
