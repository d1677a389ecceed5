package kv

import (
	"context"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drivers opens one instance of every driver for the shared behaviour tests.
func drivers(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	mr := miniredis.RunT(t)

	out := map[string]Store{}
	for name, cfg := range map[string]Config{
		DriverMemory: {Driver: DriverMemory},
		DriverSQLite: {Driver: DriverSQLite, DSN: filepath.Join(dir, "revisapp.db")},
		DriverBolt:   {Driver: DriverBolt, DSN: filepath.Join(dir, "revisapp.bolt")},
		DriverRedis:  {Driver: DriverRedis, DSN: mr.Addr()},
	} {
		s, err := New(ctx, cfg)
		require.NoError(t, err, name)
		t.Cleanup(func() { _ = s.Close() })
		out[name] = s
	}
	return out
}

func TestStore_Behaviour(t *testing.T) {
	for name, s := range drivers(t) {
		s := s
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			v, err := s.Get(ctx, "absent")
			require.NoError(t, err)
			assert.Nil(t, v, "contract: (nil, nil) for a missing key")

			require.NoError(t, s.Set(ctx, KeySession, []byte(`{"name":"Ana"}`)))
			v, err = s.Get(ctx, KeySession)
			require.NoError(t, err)
			assert.Equal(t, `{"name":"Ana"}`, string(v))

			require.NoError(t, s.Set(ctx, KeySession, []byte("new")))
			v, err = s.Get(ctx, KeySession)
			require.NoError(t, err)
			assert.Equal(t, "new", string(v), "Set overwrites")

			require.NoError(t, s.Set(ctx, KeyFirstVisit, []byte("false")))
			require.NoError(t, s.Set(ctx, KeyLastUser, []byte("keep")))
			require.NoError(t, s.Delete(ctx, KeySession, KeyFirstVisit, "never-written"))

			for _, k := range []string{KeySession, KeyFirstVisit} {
				v, err = s.Get(ctx, k)
				require.NoError(t, err)
				assert.Nil(t, v, k)
			}
			v, err = s.Get(ctx, KeyLastUser)
			require.NoError(t, err)
			assert.Equal(t, "keep", string(v))

			require.NoError(t, s.Delete(ctx, KeySession), "deleting twice is fine")
			require.NoError(t, s.Delete(ctx), "no keys is fine")
		})
	}
}

func TestStore_ReturnedSliceIsACopy(t *testing.T) {
	for name, s := range drivers(t) {
		s := s
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, "k", []byte("abc")))

			v, err := s.Get(ctx, "k")
			require.NoError(t, err)
			v[0] = 'X'

			again, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "abc", string(again))
		})
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	s, err := New(context.Background(), Config{Driver: "etcd"})
	require.ErrorIs(t, err, ErrUnknownDriver)
	assert.Nil(t, s)
}

func TestNew_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	s, err := New(context.Background(), Config{Driver: DriverRedis, DSN: addr})
	require.Error(t, err)
	assert.Nil(t, s)
}

func TestNew_RedisNeedsAddress(t *testing.T) {
	_, err := New(context.Background(), Config{Driver: DriverRedis})
	require.Error(t, err)
}

func TestRedis_UsesPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := OpenRedis(context.Background(), mr.Addr(), "test:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Set(context.Background(), KeyLogs, []byte("[]")))

	got, err := mr.Get("test:" + KeyLogs)
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}

func TestBolt_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.bolt")
	ctx := context.Background()

	s, err := OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeyLastUser, []byte("ana")))
	require.NoError(t, s.Close())

	s, err = OpenBolt(path)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Get(ctx, KeyLastUser)
	require.NoError(t, err)
	assert.Equal(t, "ana", string(v))
}

func TestBolt_CancelledContext(t *testing.T) {
	s, err := OpenBolt(filepath.Join(t.TempDir(), "c.bolt"))
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, s.Set(ctx, "k", nil), context.Canceled)
	require.ErrorIs(t, s.Delete(ctx, "k"), context.Canceled)
}

func TestRegistrationKey_Normalised(t *testing.T) {
	assert.Equal(t, "revisapp_reg_a@b.com", RegistrationKey(" A@B.com "))
}
