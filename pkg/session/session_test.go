package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploadkit/pkg/session"
)

func TestNew(t *testing.T) {
	sess := session.New("tok", time.Hour)

	require.NotNil(t, sess)
	assert.Equal(t, "tok", sess.Token)
	assert.NotEqual(t, [16]byte{}, [16]byte(sess.ID))
	assert.NotNil(t, sess.Data)
	assert.False(t, sess.IsExpired())
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Minute)
}

func TestSession_IsExpired(t *testing.T) {
	assert.True(t, session.New("tok", -time.Second).IsExpired())
	assert.False(t, session.New("tok", time.Hour).IsExpired())
}

func TestSession_Data(t *testing.T) {
	sess := session.New("tok", time.Hour)

	_, ok := sess.Get("missing")
	assert.False(t, ok)

	sess.Set("uploaded_files", map[string]string{"/uploads/a.txt": "/var/www/uploads/a.txt"})
	val, ok := sess.Get("uploaded_files")
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"/uploads/a.txt": "/var/www/uploads/a.txt"}, val)

	sess.Set("name", "report.pdf")
	str, ok := sess.GetString("name")
	assert.True(t, ok)
	assert.Equal(t, "report.pdf", str)

	_, ok = sess.GetString("uploaded_files")
	assert.False(t, ok, "non-string values are rejected by GetString")

	sess.Delete("name")
	_, ok = sess.Get("name")
	assert.False(t, ok)

	sess.Clear()
	_, ok = sess.Get("uploaded_files")
	assert.False(t, ok)
}

func TestSession_NilSafety(t *testing.T) {
	var sess *session.Session

	assert.NotPanics(t, func() {
		sess.Set("k", "v")
		sess.Delete("k")
		sess.Clear()
		sess.Touch()
		_, _ = sess.Get("k")
		_ = sess.IsExpired()
	})
}

func TestSession_Touch(t *testing.T) {
	sess := session.New("tok", time.Hour)
	before := sess.LastActivityAt

	time.Sleep(5 * time.Millisecond)
	sess.Touch()
	assert.True(t, sess.LastActivityAt.After(before))
}
