// Package checkpointer implements checkpointing of objects, such as
// value tables, during an experiment
package checkpointer

// Serializable is an object that can be saved to a file
type Serializable interface {
	Save(filename string) error
}

// Checkpointer checkpoints/saves serializable objects based on the
// number of completed episodes
type Checkpointer interface {
	Checkpoint(episode int) error
}
