package gamestate

import "github.com/rs/zerolog"

// ModalStore tracks which corner, if any, has an open modal.
//
// Any Corner value is stored verbatim. Values outside AllCorners are
// accepted and only produce a warning in the log.
type ModalStore struct {
	open   *Writable[Corner]
	logger zerolog.Logger
}

// NewModalStore creates a modal store with no modal open
func NewModalStore(opts ...StoreOption) *ModalStore {
	o := newStoreOptions("modal", opts)
	return &ModalStore{
		open:   NewWritable(NoCorner),
		logger: o.logger,
	}
}

// Subscribe registers fn for the open corner and every later change
func (s *ModalStore) Subscribe(fn func(Corner)) Unsubscriber {
	return s.open.Subscribe(fn)
}

// Get returns the open corner
func (s *ModalStore) Get() Corner {
	return s.open.Get()
}

// SetOpenModal replaces the open corner. NoCorner is the empty string, so
// SetOpenModal("") closes the modal; any other value is stored as given.
func (s *ModalStore) SetOpenModal(corner Corner) {
	switch {
	case corner == NoCorner:
		LogModalClosed(s.logger)
	case !corner.Known():
		suggestion, _ := SuggestCorner(string(corner))
		LogModalCornerUnknown(s.logger, corner, suggestion)
	default:
		LogModalOpened(s.logger, corner)
	}
	s.open.Set(corner)
}

// CloseModal closes whichever modal is open
func (s *ModalStore) CloseModal() {
	s.SetOpenModal(NoCorner)
}

var _ Readable[Corner] = (*ModalStore)(nil)
