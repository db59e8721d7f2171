package devauth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/marquee-events/marquee/internal/ports"
)

func newProvider(t *testing.T, passwordHash string) *Provider {
	t.Helper()
	p, err := NewProvider(Config{
		UserID:       "dev-user",
		Email:        "dev@marquee.local",
		PasswordHash: passwordHash,
	})
	require.NoError(t, err)
	return p
}

func TestNewProvider_RequiresIdentity(t *testing.T) {
	_, err := NewProvider(Config{Email: "dev@marquee.local"})
	assert.Error(t, err)

	_, err = NewProvider(Config{UserID: "dev-user"})
	assert.Error(t, err)
}

func TestSignIn_PasswordChecked(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	p := newProvider(t, string(hash))
	ctx := context.Background()

	_, err = p.SignInWithPassword(ctx, "dev@marquee.local", "wrong")
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)

	_, err = p.SignInWithPassword(ctx, "other@marquee.local", "hunter2")
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)

	cred, err := p.SignInWithPassword(ctx, "dev@marquee.local", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "dev-user", cred.UserID)
	assert.True(t, cred.EmailConfirmed)
	assert.NotEmpty(t, cred.AccessToken)
}

func TestSignIn_EmptyHashAcceptsAnyPassword(t *testing.T) {
	p := newProvider(t, "")
	_, err := p.SignInWithPassword(context.Background(), "dev@marquee.local", "anything")
	assert.NoError(t, err)
}

func TestGetSession_LifeCycle(t *testing.T) {
	p := newProvider(t, "")
	ctx := context.Background()

	_, err := p.GetSession(ctx)
	assert.ErrorIs(t, err, ports.ErrNoCredential)

	signed, err := p.SignInWithPassword(ctx, "dev@marquee.local", "pw")
	require.NoError(t, err)

	got, err := p.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, signed.AccessToken, got.AccessToken)

	require.NoError(t, p.SignOut(ctx))
	_, err = p.GetSession(ctx)
	assert.ErrorIs(t, err, ports.ErrNoCredential)
}

func TestEvents_SignInAndOutEmitted(t *testing.T) {
	p := newProvider(t, "")
	ctx := context.Background()

	_, err := p.SignInWithPassword(ctx, "dev@marquee.local", "pw")
	require.NoError(t, err)
	require.NoError(t, p.SignOut(ctx))

	var kinds []ports.AuthEventKind
	for i := 0; i < 2; i++ {
		select {
		case ev := <-p.Events():
			kinds = append(kinds, ev.Kind)
		case <-time.After(time.Second):
			t.Fatal("expected event was not emitted")
		}
	}
	assert.Equal(t, []ports.AuthEventKind{ports.AuthEventSignedIn, ports.AuthEventSignedOut}, kinds)
}

func TestSetSession_ExchangesTokens(t *testing.T) {
	p := newProvider(t, "")
	ctx := context.Background()

	_, err := p.SetSession(ctx, "", "")
	assert.ErrorIs(t, err, ports.ErrNoCredential)

	cred, err := p.SetSession(ctx, "acc", "ref")
	require.NoError(t, err)
	assert.Equal(t, "dev-user", cred.UserID)

	_, err = p.GetSession(ctx)
	assert.NoError(t, err)
}
