// Copyright 2026 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/flowsql/flowsql/errno"
	"github.com/flowsql/flowsql/util/dbterror"
	"github.com/flowsql/flowsql/util/logutil"
	"github.com/pingcap/errors"
	"go.uber.org/atomic"
)

// ErrInvalidConfig is returned by Valid when an item is out of range.
var ErrInvalidConfig = dbterror.ClassConfig.NewStd(errno.ErrInvalidConfig)

const (
	// DefChunkSize is the default number of rows of an output chunk.
	DefChunkSize = 1024
	// MaxChunkSize is the largest allowed chunk size.
	MaxChunkSize = 65536
	// MaxAggConcurrency is the largest allowed number of aggregation workers.
	MaxAggConcurrency = 256
)

// Config contains configuration options.
type Config struct {
	Log    Log    `toml:"log" json:"log"`
	Stream Stream `toml:"stream" json:"stream"`
}

// Log is the log section of config.
type Log struct {
	// Log level.
	Level string `toml:"level" json:"level"`
	// Log format. one of json or text.
	Format string `toml:"format" json:"format"`
	// Disable automatic timestamps in output.
	DisableTimestamp bool `toml:"disable-timestamp" json:"disable-timestamp"`
	// File log config.
	File logutil.FileLogConfig `toml:"file" json:"file"`
}

// Stream is the stream execution section of config.
type Stream struct {
	// AggConcurrency is the number of partitions a hash aggregation
	// spreads its groups over.
	AggConcurrency int `toml:"agg-concurrency" json:"agg-concurrency"`
	// ChunkSize is the maximum number of rows of a flushed chunk.
	ChunkSize int `toml:"chunk-size" json:"chunk-size"`
	// AggMemQuota is the memory quota in bytes of the states of one hash
	// aggregation. Zero means no limit.
	AggMemQuota int64 `toml:"agg-mem-quota" json:"agg-mem-quota"`
}

var defaultConf = Config{
	Log: Log{
		Level:  logutil.DefaultLogLevel,
		Format: logutil.DefaultLogFormat,
		File:   logutil.NewFileLogConfig(logutil.DefaultLogMaxSize),
	},
	Stream: Stream{
		AggConcurrency: min(runtime.GOMAXPROCS(0), 8),
		ChunkSize:      DefChunkSize,
	},
}

var globalConf atomic.Pointer[Config]

func init() {
	StoreGlobalConfig(NewConfig())
}

// NewConfig creates a new config instance with default value.
func NewConfig() *Config {
	conf := defaultConf
	return &conf
}

// GetGlobalConfig returns the global configuration.
// The returned value must not be modified; use StoreGlobalConfig to
// replace it.
func GetGlobalConfig() *Config {
	return globalConf.Load()
}

// StoreGlobalConfig stores a new config to the globalConf.
func StoreGlobalConfig(config *Config) {
	globalConf.Store(config)
}

// Load loads config options from a toml file. Undecoded keys are
// rejected.
func (c *Config) Load(confFile string) error {
	metaData, err := toml.DecodeFile(confFile, c)
	if err != nil {
		return errors.Trace(err)
	}
	if undecoded := metaData.Undecoded(); len(undecoded) > 0 {
		return ErrInvalidConfig.GenWithStackByArgs(fmt.Sprintf("unknown items %v", undecoded))
	}
	return nil
}

// Valid checks if this config is valid.
func (c *Config) Valid() error {
	if c.Stream.AggConcurrency < 1 || c.Stream.AggConcurrency > MaxAggConcurrency {
		return ErrInvalidConfig.GenWithStackByArgs(
			fmt.Sprintf("stream.agg-concurrency should be in [1, %d], got %d", MaxAggConcurrency, c.Stream.AggConcurrency))
	}
	if c.Stream.ChunkSize < 1 || c.Stream.ChunkSize > MaxChunkSize {
		return ErrInvalidConfig.GenWithStackByArgs(
			fmt.Sprintf("stream.chunk-size should be in [1, %d], got %d", MaxChunkSize, c.Stream.ChunkSize))
	}
	if c.Stream.AggMemQuota < 0 {
		return ErrInvalidConfig.GenWithStackByArgs(
			fmt.Sprintf("stream.agg-mem-quota should not be negative, got %d", c.Stream.AggMemQuota))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return ErrInvalidConfig.GenWithStackByArgs("log.format should be json or text, got " + c.Log.Format)
	}
	return nil
}

// ToLogConfig converts *Log to *logutil.LogConfig.
func (l *Log) ToLogConfig() *logutil.LogConfig {
	return logutil.NewLogConfig(l.Level, l.Format, l.File, l.DisableTimestamp)
}
