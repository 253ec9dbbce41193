package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "123456:TEST-TOKEN"

// signInitData reproduit la signature côté Telegram pour les tests
func signInitData(values url.Values, botToken string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	secret := secretMac.Sum(nil)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(strings.Join(pairs, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}

func buildInitData(t *testing.T, authDate time.Time) string {
	t.Helper()

	values := url.Values{}
	values.Set("user", `{"id":777,"first_name":"Ivan","username":"ivan_dn","language_code":"ru"}`)
	values.Set("auth_date", fmt.Sprintf("%d", authDate.Unix()))
	values.Set("query_id", "AAH-test")

	hash := signInitData(values, testBotToken)
	values.Set("hash", hash)
	return values.Encode()
}

func TestValidateInitDataAccepted(t *testing.T) {
	initData := buildInitData(t, time.Now())

	values, err := ValidateInitData(initData, testBotToken)
	require.NoError(t, err)
	assert.Contains(t, values.Get("user"), `"id":777`)
}

func TestValidateInitDataTampered(t *testing.T) {
	initData := buildInitData(t, time.Now())
	tampered := strings.Replace(initData, "777", "778", 1)

	_, err := ValidateInitData(tampered, testBotToken)
	assert.Error(t, err)
}

func TestValidateInitDataWrongToken(t *testing.T) {
	initData := buildInitData(t, time.Now())

	_, err := ValidateInitData(initData, "999999:OTHER-TOKEN")
	assert.Error(t, err)
}

func TestValidateInitDataExpired(t *testing.T) {
	initData := buildInitData(t, time.Now().Add(-25*time.Hour))

	_, err := ValidateInitData(initData, testBotToken)
	assert.Error(t, err)
}

func TestValidateInitDataMissingHash(t *testing.T) {
	_, err := ValidateInitData("auth_date=1", testBotToken)
	assert.Error(t, err)
}
