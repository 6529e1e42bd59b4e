package cli

import (
	"context"

	"github.com/dsavelev/gitnotes/internal/common"
	"github.com/dsavelev/gitnotes/internal/cryptox"
	"github.com/dsavelev/gitnotes/internal/github"
	"github.com/dsavelev/gitnotes/internal/repositories/settings"
)

// SetToken prompts for a GitHub personal access token and a passphrase,
// and stores the token encrypted at rest. The passphrase is needed again
// to unlock the token in later sessions.
func (a *App) SetToken(ctx context.Context) error {
	token, err := GetPassword(writer(), "GitHub token: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(token)

	pass, err := GetPassword(writer(), "Passphrase to protect it: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	salt, err := common.GenerateRandByteArray(saltSize)
	if err != nil {
		return err
	}

	key := cryptox.DeriveKey(pass, salt)
	defer common.WipeByteArray(key)

	blob, err := cryptox.Seal(token, key)
	if err != nil {
		return err
	}

	if err := a.settings.Set(ctx, settings.KeyGitHubToken, blob); err != nil {
		return err
	}
	if err := a.settings.Set(ctx, settings.KeyTokenSalt, salt); err != nil {
		return err
	}

	// The fresh token replaces whatever was unlocked before.
	a.setCredentials(&github.Credentials{Token: string(token)})

	printlnFn("Token stored.")
	return nil
}
