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
	"encoding/json"
	"reflect"
	"slices"

	"github.com/flowsql/flowsql/util/logutil"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

// CloneConf deeply clones this config.
func CloneConf(conf *Config) (*Config, error) {
	content, err := json.Marshal(conf)
	if err != nil {
		return nil, err
	}
	var clonedConf Config
	if err := json.Unmarshal(content, &clonedConf); err != nil {
		return nil, err
	}
	return &clonedConf, nil
}

// dynamicConfigItems contains all config items that can be changed during
// runtime. Executors read the stream items when they are created.
var dynamicConfigItems = map[string]struct{}{
	"Log.Level":          {},
	"Stream.ChunkSize":   {},
	"Stream.AggMemQuota": {},
}

// ReloadGlobalConfig loads confFile and applies its dynamic items to a copy
// of the global config, which then replaces it. Changed items that cannot
// be applied at runtime are returned as rejected and left as they are.
func ReloadGlobalConfig(confFile string) (acceptedItems, rejectedItems []string, err error) {
	newConf := NewConfig()
	if err = newConf.Load(confFile); err != nil {
		return nil, nil, err
	}
	if err = newConf.Valid(); err != nil {
		return nil, nil, err
	}
	conf, err := CloneConf(GetGlobalConfig())
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	acceptedItems, rejectedItems = MergeConfigItems(conf, newConf)
	if slices.Contains(acceptedItems, "Log.Level") {
		if err = logutil.SetLevel(conf.Log.Level); err != nil {
			return nil, nil, err
		}
	}
	if len(acceptedItems) > 0 {
		StoreGlobalConfig(conf)
	}
	logutil.BgLogger().Info("reload config",
		zap.String("file", confFile),
		zap.Strings("accepted", acceptedItems),
		zap.Strings("rejected", rejectedItems))
	return acceptedItems, rejectedItems, nil
}

// MergeConfigItems overwrites the dynamic config items and leaves the other items unchanged.
func MergeConfigItems(dstConf, newConf *Config) (acceptedItems, rejectedItems []string) {
	return mergeConfigItems(reflect.ValueOf(dstConf), reflect.ValueOf(newConf), "")
}

func mergeConfigItems(dstConf, newConf reflect.Value, fieldPath string) (acceptedItems, rejectedItems []string) {
	t := dstConf.Type()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
		dstConf = dstConf.Elem()
		newConf = newConf.Elem()
	}
	if t.Kind() != reflect.Struct {
		if reflect.DeepEqual(dstConf.Interface(), newConf.Interface()) {
			return
		}
		if _, ok := dynamicConfigItems[fieldPath]; ok {
			dstConf.Set(newConf)
			return []string{fieldPath}, nil
		}
		return nil, []string{fieldPath}
	}

	for i := 0; i < t.NumField(); i++ {
		fieldName := t.Field(i).Name
		if fieldPath != "" {
			fieldName = fieldPath + "." + fieldName
		}
		as, rs := mergeConfigItems(dstConf.Field(i), newConf.Field(i), fieldName)
		acceptedItems = append(acceptedItems, as...)
		rejectedItems = append(rejectedItems, rs...)
	}
	return
}
