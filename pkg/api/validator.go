package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p DirectionPayload) Validate() error {
	if p.Dx == 0 && p.Dy == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step too large")
	}
	return nil
}

func (s Snapshot) Validate() error {
	if s.Grid.Width <= 0 || s.Grid.Height <= 0 {
		return errors.New("snapshot grid is empty")
	}
	if s.State == "" {
		return errors.New("snapshot state is required")
	}
	return nil
}
