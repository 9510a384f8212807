package config

import (
	"path/filepath"
	"runtime"
	"time"
)

type Config struct {
	Output      string
	Support     int
	Fraction    float64
	Rounding    string
	Parallelism int
	Timeout     time.Duration
}

func (c *Config) Copy() *Config {
	return &Config{
		Output:      c.Output,
		Support:     c.Support,
		Fraction:    c.Fraction,
		Rounding:    c.Rounding,
		Parallelism: c.Parallelism,
		Timeout:     c.Timeout,
	}
}

// Workers is never less than 1. -1 means one per cpu.
func (c *Config) Workers() int {
	if c.Parallelism == -1 {
		return runtime.NumCPU()
	} else if c.Parallelism < 1 {
		return 1
	} else {
		return c.Parallelism
	}
}

func (c *Config) OutputFile(name string) string {
	return filepath.Join(c.Output, name)
}
