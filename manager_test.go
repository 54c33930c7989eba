// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confbind

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/z5labs/confbind/codec"
	"github.com/z5labs/confbind/internal/try"
	"github.com/z5labs/confbind/schema"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ReadFile(t *testing.T) {
	t.Run("will bind the target", func(t *testing.T) {
		t.Run("if the path holds a yaml file", func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			err := afero.WriteFile(fsys, "config.yaml", []byte("username: testUser\npassword: testPassword\n"), 0o644)
			require.NoError(t, err)

			m := New(credentialsSchema(t), WithFS(fsys))

			var creds credentials
			err = m.ReadFile(context.Background(), "config.yaml", &creds)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "testUser", creds.Username) {
				return
			}
			if !assert.Equal(t, "testPassword", creds.Password) {
				return
			}
			if !assert.False(t, creds.IsAdmin) {
				return
			}
		})

		t.Run("if the path holds a jsonc file", func(t *testing.T) {
			src := `{
				// login
				"username": "testUser",
				"password": "testPassword",
			}`

			fsys := afero.NewMemMapFs()
			err := afero.WriteFile(fsys, "config.jsonc", []byte(src), 0o644)
			require.NoError(t, err)

			m := New(credentialsSchema(t), WithFS(fsys))

			var creds credentials
			err = m.ReadFile(context.Background(), "config.jsonc", &creds)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "testUser", creds.Username) {
				return
			}
		})
	})

	t.Run("will return an UnsupportedFormatError", func(t *testing.T) {
		t.Run("if the extension has no codec, before touching the file", func(t *testing.T) {
			// the file intentionally does not exist so a FileNotFoundError
			// here would mean the file was consulted before the format
			m := New(credentialsSchema(t), WithFS(afero.NewMemMapFs()))

			var creds credentials
			err := m.ReadFile(context.Background(), "config.toml", &creds)

			var uerr codec.UnsupportedFormatError
			if !assert.ErrorAs(t, err, &uerr) {
				return
			}
			if !assert.Equal(t, ".toml", uerr.Format) {
				return
			}
		})
	})

	t.Run("will return a FileNotFoundError", func(t *testing.T) {
		t.Run("if the path does not exist", func(t *testing.T) {
			m := New(credentialsSchema(t), WithFS(afero.NewMemMapFs()))

			var creds credentials
			err := m.ReadFile(context.Background(), "missing.yaml", &creds)

			var ferr FileNotFoundError
			if !assert.ErrorAs(t, err, &ferr) {
				return
			}
			if !assert.Equal(t, "missing.yaml", ferr.Path) {
				return
			}
			if !assert.ErrorIs(t, err, fs.ErrNotExist) {
				return
			}
		})
	})

	t.Run("will return a ValidationError", func(t *testing.T) {
		t.Run("if the file is missing required fields", func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			err := afero.WriteFile(fsys, "config.json", []byte(`{"username": "testUser"}`), 0o644)
			require.NoError(t, err)

			m := New(credentialsSchema(t), WithFS(fsys))

			var creds credentials
			err = m.ReadFile(context.Background(), "config.json", &creds)

			var verr ValidationError
			if !assert.ErrorAs(t, err, &verr) {
				return
			}
			if !assert.Equal(t, []string{"password"}, verr.Missing) {
				return
			}
		})
	})

	t.Run("will honor context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		m := New(credentialsSchema(t), WithFS(afero.NewMemMapFs()))

		var creds credentials
		err := m.ReadFile(ctx, "config.yaml", &creds)
		if !assert.ErrorIs(t, err, context.Canceled) {
			return
		}
	})
}

type readCloser struct {
	io.Reader

	closed   bool
	closeErr error
}

func (rc *readCloser) Close() error {
	rc.closed = true
	return rc.closeErr
}

func TestManager_ReadFrom(t *testing.T) {
	t.Run("will bind the target", func(t *testing.T) {
		t.Run("if the format token names a codec", func(t *testing.T) {
			m := New(credentialsSchema(t))

			var creds credentials
			err := m.ReadFrom(
				context.Background(),
				strings.NewReader(`{"username": "testUser", "password": "testPassword"}`),
				"json",
				&creds,
			)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "testUser", creds.Username) {
				return
			}
		})
	})

	t.Run("will close the reader", func(t *testing.T) {
		t.Run("if it implements io.Closer", func(t *testing.T) {
			rc := &readCloser{
				Reader: strings.NewReader(`{"username": "testUser", "password": "testPassword"}`),
			}

			m := New(credentialsSchema(t))

			var creds credentials
			err := m.ReadFrom(context.Background(), rc, "json", &creds)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.True(t, rc.closed) {
				return
			}
		})

		t.Run("and surface a close failure", func(t *testing.T) {
			closeErr := errors.New("close failed")
			rc := &readCloser{
				Reader:   strings.NewReader(`{"username": "testUser", "password": "testPassword"}`),
				closeErr: closeErr,
			}

			m := New(credentialsSchema(t))

			var creds credentials
			err := m.ReadFrom(context.Background(), rc, "json", &creds)

			var cerr try.CloseError
			if !assert.ErrorAs(t, err, &cerr) {
				return
			}
			if !assert.ErrorIs(t, err, closeErr) {
				return
			}
		})
	})

	t.Run("will return an UnsupportedFormatError", func(t *testing.T) {
		t.Run("if the format token names no codec", func(t *testing.T) {
			m := New(credentialsSchema(t))

			var creds credentials
			err := m.ReadFrom(context.Background(), strings.NewReader("{}"), "toml", &creds)

			var uerr codec.UnsupportedFormatError
			if !assert.ErrorAs(t, err, &uerr) {
				return
			}
		})
	})
}

func TestManager_WriteFile(t *testing.T) {
	t.Run("will choose the codec from the path extension", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		m := New(credentialsSchema(t), WithFS(fsys))

		creds := credentials{
			Username: "testUser",
			Password: "testPassword",
			IsAdmin:  true,
		}
		err := m.WriteFile(context.Background(), "config.json", creds)
		require.NoError(t, err)

		b, err := afero.ReadFile(fsys, "config.json")
		require.NoError(t, err)

		expected := "{\n  \"username\": \"testUser\",\n  \"password\": \"testPassword\",\n  \"isAdmin\": true\n}\n"
		assert.Equal(t, expected, string(b))
	})

	t.Run("will fall back to the default codec for unknown extensions", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		m := New(credentialsSchema(t), WithFS(fsys))

		err := m.WriteFile(context.Background(), "config.conf", credentials{Username: "testUser"})
		require.NoError(t, err)

		b, err := afero.ReadFile(fsys, "config.conf")
		require.NoError(t, err)
		assert.Equal(t, "username: testUser\npassword: \"\"\nisAdmin: false\n", string(b))
	})

	t.Run("will honor an explicit format override", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		m := New(credentialsSchema(t), WithFS(fsys))

		err := m.WriteFile(context.Background(), "config.conf", credentials{Username: "testUser"}, WithFormat("json"))
		require.NoError(t, err)

		b, err := afero.ReadFile(fsys, "config.conf")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(b), "{"))
	})

	t.Run("will fail on an unknown explicit format", func(t *testing.T) {
		m := New(credentialsSchema(t), WithFS(afero.NewMemMapFs()))

		err := m.WriteFile(context.Background(), "config.yaml", credentials{}, WithFormat("toml"))

		var uerr codec.UnsupportedFormatError
		assert.ErrorAs(t, err, &uerr)
	})

	t.Run("will fully overwrite an existing file", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		err := afero.WriteFile(fsys, "config.yaml", []byte(strings.Repeat("x", 1024)), 0o644)
		require.NoError(t, err)

		m := New(credentialsSchema(t), WithFS(fsys))
		err = m.WriteFile(context.Background(), "config.yaml", credentials{Username: "testUser"})
		require.NoError(t, err)

		b, err := afero.ReadFile(fsys, "config.yaml")
		require.NoError(t, err)
		assert.Equal(t, "username: testUser\npassword: \"\"\nisAdmin: false\n", string(b))
	})

	t.Run("will round trip through ReadFile", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		m := New(credentialsSchema(t), WithFS(fsys))

		creds := credentials{
			Username: "testUser",
			Password: "testPassword",
			IsAdmin:  true,
		}
		err := m.WriteFile(context.Background(), "config.yaml", creds)
		require.NoError(t, err)

		var readBack credentials
		err = m.ReadFile(context.Background(), "config.yaml", &readBack)
		require.NoError(t, err)
		assert.Equal(t, creds, readBack)
	})
}

func TestManager_WriteDefaults(t *testing.T) {
	t.Run("will scaffold a hand editable config file", func(t *testing.T) {
		s, err := schema.New(
			schema.String("username", schema.Required()),
			schema.String("password", schema.Required(), schema.Placeholder("CHANGE ME")),
			schema.Bool("isAdmin", schema.Default(false)),
			schema.String("note"),
		)
		require.NoError(t, err)

		fsys := afero.NewMemMapFs()
		m := New(s, WithFS(fsys))

		err = m.WriteDefaults(context.Background(), "config.yaml")
		require.NoError(t, err)

		b, err := afero.ReadFile(fsys, "config.yaml")
		require.NoError(t, err)

		expected := "username: REQUIRED FIELD (string)\npassword: CHANGE ME\nisAdmin: false\n"
		assert.Equal(t, expected, string(b))
	})
}

func TestManager_Valid(t *testing.T) {
	m := New(credentialsSchema(t))

	assert.True(t, m.Valid(credentials{}))
	assert.False(t, m.Valid(map[string]any{"username": "testUser"}))
}

func TestRead(t *testing.T) {
	t.Run("will return a bound value", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		err := afero.WriteFile(fsys, "config.yaml", []byte("username: testUser\npassword: testPassword\n"), 0o644)
		require.NoError(t, err)

		m := New(credentialsSchema(t), WithFS(fsys))

		creds, err := Read[credentials](context.Background(), m, "config.yaml")
		require.NoError(t, err)
		assert.Equal(t, "testUser", creds.Username)
	})

	t.Run("will return the read error", func(t *testing.T) {
		m := New(credentialsSchema(t), WithFS(afero.NewMemMapFs()))

		_, err := Read[credentials](context.Background(), m, "missing.yaml")

		var ferr FileNotFoundError
		assert.ErrorAs(t, err, &ferr)
	})
}
