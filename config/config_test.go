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
	"os"
	"path/filepath"
	"testing"

	"github.com/flowsql/flowsql/util/logutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultConfig(t *testing.T) {
	conf := NewConfig()
	require.NoError(t, conf.Valid())
	require.Equal(t, DefChunkSize, conf.Stream.ChunkSize)
	require.GreaterOrEqual(t, conf.Stream.AggConcurrency, 1)
	require.NotNil(t, GetGlobalConfig())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[log]
level = "debug"
format = "json"

[stream]
agg-concurrency = 3
chunk-size = 256
agg-mem-quota = 1048576
`), 0o644))

	conf := NewConfig()
	require.NoError(t, conf.Load(path))
	require.NoError(t, conf.Valid())
	require.Equal(t, "debug", conf.Log.Level)
	require.Equal(t, 3, conf.Stream.AggConcurrency)
	require.Equal(t, 256, conf.Stream.ChunkSize)
	require.Equal(t, int64(1<<20), conf.Stream.AggMemQuota)
	require.Equal(t, "debug", conf.Log.ToLogConfig().Level)

	require.NoError(t, os.WriteFile(path, []byte("[stream]\nunknown-item = 1\n"), 0o644))
	err := NewConfig().Load(path)
	require.True(t, ErrInvalidConfig.Equal(err))

	require.Error(t, NewConfig().Load(filepath.Join(t.TempDir(), "missing.toml")))
}

func TestConfigValid(t *testing.T) {
	conf := NewConfig()
	conf.Stream.AggConcurrency = 0
	require.True(t, ErrInvalidConfig.Equal(conf.Valid()))

	conf = NewConfig()
	conf.Stream.ChunkSize = MaxChunkSize + 1
	require.True(t, ErrInvalidConfig.Equal(conf.Valid()))

	conf = NewConfig()
	conf.Stream.AggMemQuota = -1
	require.True(t, ErrInvalidConfig.Equal(conf.Valid()))

	conf = NewConfig()
	conf.Log.Format = "console"
	require.True(t, ErrInvalidConfig.Equal(conf.Valid()))
}

func TestGlobalConfig(t *testing.T) {
	orig := GetGlobalConfig()
	defer StoreGlobalConfig(orig)

	conf, err := CloneConf(orig)
	require.NoError(t, err)
	conf.Stream.AggConcurrency = 5
	StoreGlobalConfig(conf)
	require.Equal(t, 5, GetGlobalConfig().Stream.AggConcurrency)
	require.NotSame(t, orig, GetGlobalConfig())
}

func TestMergeConfigItems(t *testing.T) {
	dst := NewConfig()
	newConf := NewConfig()
	newConf.Log.Level = "warn"
	newConf.Stream.ChunkSize = 64
	newConf.Stream.AggConcurrency = dst.Stream.AggConcurrency + 1

	accepted, rejected := MergeConfigItems(dst, newConf)
	require.ElementsMatch(t, []string{"Log.Level", "Stream.ChunkSize"}, accepted)
	require.Equal(t, []string{"Stream.AggConcurrency"}, rejected)
	require.Equal(t, "warn", dst.Log.Level)
	require.Equal(t, 64, dst.Stream.ChunkSize)
	require.NotEqual(t, newConf.Stream.AggConcurrency, dst.Stream.AggConcurrency)
}

func TestReloadGlobalConfig(t *testing.T) {
	orig := GetGlobalConfig()
	defer func() {
		StoreGlobalConfig(orig)
		require.NoError(t, logutil.SetLevel(orig.Log.Level))
	}()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(`
[log]
level = "warn"

[stream]
agg-concurrency = %d
chunk-size = 128
agg-mem-quota = 4096
`, orig.Stream.AggConcurrency+1)), 0o644))

	accepted, rejected, err := ReloadGlobalConfig(path)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Log.Level", "Stream.ChunkSize", "Stream.AggMemQuota"}, accepted)
	require.Equal(t, []string{"Stream.AggConcurrency"}, rejected)

	conf := GetGlobalConfig()
	require.NotSame(t, orig, conf)
	require.Equal(t, 128, conf.Stream.ChunkSize)
	require.Equal(t, int64(4096), conf.Stream.AggMemQuota)
	require.Equal(t, orig.Stream.AggConcurrency, conf.Stream.AggConcurrency)
	require.False(t, logutil.BgLogger().Core().Enabled(zap.InfoLevel))
	// The stored config is never modified in place.
	require.Equal(t, DefChunkSize, orig.Stream.ChunkSize)

	require.NoError(t, os.WriteFile(path, []byte("[stream]\nchunk-size = 0\n"), 0o644))
	_, _, err = ReloadGlobalConfig(path)
	require.True(t, ErrInvalidConfig.Equal(err))
	require.Same(t, conf, GetGlobalConfig())

	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"loud\"\n"), 0o644))
	_, _, err = ReloadGlobalConfig(path)
	require.Error(t, err)
	require.Same(t, conf, GetGlobalConfig())
}
