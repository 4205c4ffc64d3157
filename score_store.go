package gamestate

import "github.com/rs/zerolog"

// ScoreStore holds the player's score
type ScoreStore struct {
	state  *Writable[ScoreState]
	logger zerolog.Logger
}

// NewScoreStore creates a score store starting at zero
func NewScoreStore(opts ...StoreOption) *ScoreStore {
	o := newStoreOptions("score", opts)
	return &ScoreStore{
		state:  NewWritable(ScoreState{}),
		logger: o.logger,
	}
}

// Subscribe registers fn for the current score and every later change
func (s *ScoreStore) Subscribe(fn func(ScoreState)) Unsubscriber {
	return s.state.Subscribe(fn)
}

// Get returns the current score
func (s *ScoreStore) Get() ScoreState {
	return s.state.Get()
}

// AddScore adds points, which may be negative, to the score
func (s *ScoreStore) AddScore(points int) {
	var total int
	s.state.Update(func(st ScoreState) ScoreState {
		total = st.Score + points
		return ScoreState{Score: total}
	})
	LogScoreAdded(s.logger, points, total)
}

// ResetScore sets the score back to zero
func (s *ScoreStore) ResetScore() {
	LogScoreReset(s.logger)
	s.state.Set(ScoreState{})
}

var _ Readable[ScoreState] = (*ScoreStore)(nil)
