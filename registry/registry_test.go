/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/suparena/entitymap/errors"
)

type keyedA struct{ Name string }
type keyedB struct{ Name string }

func TestRegistryBasicOperations(t *testing.T) {
	r := New[string]("table")
	k := KeyForType(typeOf[keyedA]())

	require.NoError(t, r.Add(k, "Customers", false))

	v, ok := r.Get(k)
	require.True(t, ok)
	assert.Equal(t, "Customers", v)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, []Key{k}, r.Keys())

	r.Remove(k)
	_, ok = r.Get(k)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistryConflictPolicy(t *testing.T) {
	k := KeyForType(typeOf[keyedA]())

	t.Run("NoClobber", func(t *testing.T) {
		r := New[string]("table")
		require.NoError(t, r.Add(k, "v1", false))

		err := r.Add(k, "v2", false)
		require.Error(t, err)
		assert.True(t, errors.IsMappingAlreadyExists(err))
		assert.Contains(t, err.Error(), "registry.keyedA")

		v, _ := r.Get(k)
		assert.Equal(t, "v1", v)
	})

	t.Run("ForceOverwrite", func(t *testing.T) {
		r := New[string]("table")
		require.NoError(t, r.Add(k, "v1", false))
		require.NoError(t, r.Add(k, "v2", true))

		v, _ := r.Get(k)
		assert.Equal(t, "v2", v)
		assert.Equal(t, 1, r.Len())
	})

	t.Run("ForceOnAbsentKey", func(t *testing.T) {
		r := New[string]("table")
		require.NoError(t, r.Add(k, "v1", true))

		v, ok := r.Get(k)
		assert.True(t, ok)
		assert.Equal(t, "v1", v)
	})
}

func TestRegistryRemoveIdempotent(t *testing.T) {
	r := New[int]("dbtype")
	k := KeyForType(typeOf[keyedB]())

	assert.NotPanics(t, func() {
		r.Remove(k)
		r.Remove(k)
	})

	require.NoError(t, r.Add(k, 1, false))
	r.Remove(k)
	r.Remove(k)
	_, ok := r.Get(k)
	assert.False(t, ok)
}

func TestRegistryClear(t *testing.T) {
	tables := New[string]("table")
	columns := New[string]("column")
	ka := KeyForType(typeOf[keyedA]())
	kb := KeyForType(typeOf[keyedB]())

	require.NoError(t, tables.Add(ka, "A", false))
	require.NoError(t, tables.Add(kb, "B", false))
	require.NoError(t, columns.Add(ka, "a", false))

	tables.Clear()

	_, ok := tables.Get(ka)
	assert.False(t, ok)
	_, ok = tables.Get(kb)
	assert.False(t, ok)

	v, ok := columns.Get(ka)
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	require.NoError(t, tables.Add(ka, "A2", false))
}

func TestRegistryConcurrentDistinctKeys(t *testing.T) {
	const goroutines = 64

	r := New[string]("column")
	keys := make([]Key, goroutines)
	for i := range keys {
		keys[i] = intern(fmt.Sprintf("concurrent-%d", i), func() string { return "" })
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []error
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := r.Add(keys[i], fmt.Sprintf("value-%d", i), false); err != nil {
				mu.Lock()
				failures = append(failures, err)
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Empty(t, failures)
	assert.Equal(t, goroutines, r.Len())
	for i, k := range keys {
		v, ok := r.Get(k)
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("value-%d", i), v)
	}
}

func TestRegistryConcurrentSameKey(t *testing.T) {
	const goroutines = 32

	r := New[int]("table")
	k := KeyForType(typeOf[keyedA]())

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := r.Add(k, i, false); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
			_ = r.Add(k, i, true)
			r.Get(k)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := New[string]("table", WithLogger(zap.New(core)))
	k := KeyForType(typeOf[keyedA]())

	require.NoError(t, r.Add(k, "v1", false))
	require.Error(t, r.Add(k, "v2", false))
	require.NoError(t, r.Add(k, "v2", true))
	r.Remove(k)
	r.Clear()

	messages := make([]string, 0, logs.Len())
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
		assert.Equal(t, "table", entry.ContextMap()["registry"])
	}
	assert.Equal(t, []string{
		"mapping added",
		"mapping rejected",
		"mapping added",
		"mapping removed",
		"registry cleared",
	}, messages)

	replaced := logs.All()[2].ContextMap()["replaced"]
	assert.Equal(t, true, replaced)
}
