package service

import (
	"time"

	"github.com/MKhiriev/go-community-access/models"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func memberRecord(id int64, username string, role models.Role) models.AccountWithProfile {
	return models.AccountWithProfile{
		Account: models.Account{
			ID:           id,
			Username:     username,
			Email:        username + "@example.org",
			PasswordHash: "hash-" + username,
			Active:       true,
			FirstName:    "First" + username,
			LastName:     "Last",
		},
		Profile: models.Profile{AccountID: id, Role: role},
	}
}

func superuserRecord(id int64) models.AccountWithoutProfile {
	return models.AccountWithoutProfile{Account: models.Account{
		ID:           id,
		Username:     "root",
		Email:        "root@example.org",
		PasswordHash: "hash-root",
		Active:       true,
		IsSuperuser:  true,
	}}
}

func identityOf(r models.AccountRecord) models.Identity {
	return models.NewIdentity(r, models.AuthMethodSession)
}
