package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"printshop_api/internal/core/models"
	"printshop_api/pkg/logger"
)

// AuthEngine определяет, как адаптер подписывает исходящие запросы.
type AuthEngine interface {
	Authorize(ctx context.Context, req *http.Request) error
}

// SubscriptionKeyAuth — статичный ключ подписки в заголовке.
type SubscriptionKeyAuth struct {
	header string
	key    string
}

func NewSubscriptionKeyAuth(key string) *SubscriptionKeyAuth {
	return &SubscriptionKeyAuth{header: "Subscription-Key", key: key}
}

func (a *SubscriptionKeyAuth) Authorize(_ context.Context, req *http.Request) error {
	req.Header.Set(a.header, a.key)
	return nil
}

// BasicAuth — HTTP basic из номера аккаунта и API-ключа.
type BasicAuth struct {
	account string
	apiKey  string
}

func NewBasicAuth(account, apiKey string) *BasicAuth {
	return &BasicAuth{account: account, apiKey: apiKey}
}

func (a *BasicAuth) Authorize(_ context.Context, req *http.Request) error {
	req.SetBasicAuth(a.account, a.apiKey)
	return nil
}

// refreshFraction — доля окна валидности токена, после которой мы
// обновляемся проактивно, не дожидаясь 401 на боевом запросе.
const refreshFraction = 0.95

const defaultTokenValidity = time.Hour

// BearerLoginAuth — ключ подписки плюс короткоживущий bearer-токен,
// получаемый отдельным логином и проактивно обновляемый на ~95% окна
// валидности. Обновление идемпотентно: состояние токена под мьютексом,
// водяной знак перепроверяется под локом, так что конкурентные вызовы
// делают максимум один логин на окно.
type BearerLoginAuth struct {
	supplier models.Supplier
	key      string
	email    string
	password string
	loginURL string
	client   *http.Client
	log      logger.Logger

	mu        sync.Mutex
	token     string
	expiresAt time.Time
	refreshAt time.Time

	now func() time.Time
}

func NewBearerLoginAuth(supplier models.Supplier, key, email, password, loginURL string, log logger.Logger) *BearerLoginAuth {
	return &BearerLoginAuth{
		supplier: supplier,
		key:      key,
		email:    email,
		password: password,
		loginURL: loginURL,
		client:   &http.Client{Timeout: 15 * time.Second},
		log:      log,
		now:      time.Now,
	}
}

func (a *BearerLoginAuth) Authorize(ctx context.Context, req *http.Request) error {
	req.Header.Set("Subscription-Key", a.key)

	token, err := a.ensureToken(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}

// ensureToken возвращает действующий токен, логинясь при первом вызове
// и после достижения водяного знака обновления.
func (a *BearerLoginAuth) ensureToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Без учётных данных работаем на одном ключе подписки: прайс-эндпоинты
	// будут недоступны, каталожные — работают.
	if a.email == "" || a.password == "" {
		return "", nil
	}

	if a.token != "" && a.now().Before(a.refreshAt) {
		return a.token, nil
	}

	body, err := json.Marshal(loginRequest{Email: a.email, Password: a.password})
	if err != nil {
		return "", fmt.Errorf("marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.loginURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Subscription-Key", a.key)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", &AuthError{Supplier: a.supplier, Status: resp.StatusCode, Reason: "login rejected"}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login returned status %d", resp.StatusCode)
	}

	var decoded loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}

	token := decoded.Token
	if token == "" {
		token = decoded.AccessToken
	}
	if token == "" {
		return "", &AuthError{Supplier: a.supplier, Status: resp.StatusCode, Reason: "login response carried no token"}
	}

	validity := defaultTokenValidity
	if decoded.ExpiresIn > 0 {
		validity = time.Duration(decoded.ExpiresIn) * time.Second
	}

	issuedAt := a.now()
	a.token = token
	a.expiresAt = issuedAt.Add(validity)
	a.refreshAt = issuedAt.Add(time.Duration(float64(validity) * refreshFraction))
	a.log.Log("obtained bearer token for %s, valid until %s", a.supplier, a.expiresAt.Format(time.RFC3339))

	return a.token, nil
}
