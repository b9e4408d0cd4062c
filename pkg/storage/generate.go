package storage

//go:generate go tool mockery
