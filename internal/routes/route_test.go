package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/carnivalxperience/internal/config"
	"github.com/joshua-takyi/carnivalxperience/internal/container"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
	"github.com/joshua-takyi/carnivalxperience/internal/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookSecret = "test-webhook-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := &config.Config{
		Port:        "0",
		AppURL:      "http://api.test",
		FrontendURL: "http://app.test",
		CORSOrigins: []string{"http://app.test"},
		Environment: "test",
		DataBackend: "memory",
		Payments: config.PaymentConfig{
			Mode:              "demo",
			DemoWebhookSecret: webhookSecret,
			Currency:          "NGN",
		},
		Geocoder: config.GeocoderConfig{
			BaseURL:   "http://127.0.0.1:1",
			UserAgent: "CarnivalXperience-test",
			Timeout:   100 * time.Millisecond,
		},
	}
	mem := models.NewMemoryRepo()
	container.SeedDemo(mem, time.Now().UTC())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := container.NewContainer(t.Context(), cfg, logger, container.Backends{Memory: mem})
	t.Cleanup(c.Close)
	return SetupRoutes(c)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Total   int             `json:"total"`
}

func call(t *testing.T, r http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "" && w.Body.Len() > 0 && w.Code != http.StatusFound {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealth(t *testing.T) {
	r := newTestApp(t)
	w, _ := call(t, r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "memory")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestApp(t)
	for _, path := range []string{"/api/bookings", "/api/safety/incidents", "/api/favourites", "/api/concierge/sessions"} {
		w, env := call(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "unauthorized", env.Error, path)
	}
}

func TestEventsAndHotelsArePublic(t *testing.T) {
	r := newTestApp(t)

	w, env := call(t, r, http.MethodGet, "/api/events?category=parade", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	events := decode[[]map[string]interface{}](t, env.Data)
	require.Len(t, events, 1)
	assert.Equal(t, "Carnival Calabar Grand Parade", events[0]["title"])
	assert.Equal(t, 1, env.Total)

	w, env = call(t, r, http.MethodGet, "/api/events?lat=4.9757&lng=8.3417&radiusKm=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	nearby := decode[[]map[string]interface{}](t, env.Data)
	require.NotEmpty(t, nearby)
	assert.Contains(t, nearby[0], "distanceKm")

	w, env = call(t, r, http.MethodGet, "/api/events?lat=4.9", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION", env.Code)

	w, env = call(t, r, http.MethodGet, "/api/hotels?sort=rating", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	hotels := decode[[]map[string]interface{}](t, env.Data)
	require.Len(t, hotels, 2)
	assert.Equal(t, "Transcorp Hotels Calabar", hotels[0]["name"])

	w, _ = call(t, r, http.MethodGet, "/api/hotels/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingAndDemoPaymentFlow(t *testing.T) {
	r := newTestApp(t)

	_, env := call(t, r, http.MethodGet, "/api/hotels?search=Channel", "", nil)
	hotels := decode[[]map[string]interface{}](t, env.Data)
	require.Len(t, hotels, 1)

	today := time.Now().UTC()
	w, env := call(t, r, http.MethodPost, "/api/bookings", container.DemoAttendeeToken, map[string]interface{}{
		"hotelId":    hotels[0]["id"],
		"checkIn":    today.AddDate(0, 0, 1).Format("2006-01-02"),
		"checkOut":   today.AddDate(0, 0, 3).Format("2006-01-02"),
		"rooms":      2,
		"roomType":   "standard",
		"guestName":  "Ada Obi",
		"guestEmail": "ada@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	booking := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, float64(120000), booking["totalAmount"])
	assert.Equal(t, "pending", booking["paymentStatus"])
	assert.NotEmpty(t, booking["paymentUrl"])
	ref := booking["bookingReference"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/payments/verify?reference="+url.QueryEscape(ref), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "http://app.test/bookings?payment=success&reference="+url.QueryEscape(ref), rec.Header().Get("Location"))

	w, env = call(t, r, http.MethodGet, "/api/bookings/"+booking["id"].(string), container.DemoAttendeeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	paid := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, "paid", paid["paymentStatus"])
	assert.Equal(t, "confirmed", paid["status"])

	// another user cannot see it
	w, _ = call(t, r, http.MethodGet, "/api/bookings/"+booking["id"].(string), container.DemoAdminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingWithoutInventory(t *testing.T) {
	r := newTestApp(t)
	_, env := call(t, r, http.MethodGet, "/api/hotels?search=Transcorp", "", nil)
	hotels := decode[[]map[string]interface{}](t, env.Data)
	require.Len(t, hotels, 1)

	today := time.Now().UTC()
	w, env := call(t, r, http.MethodPost, "/api/bookings", container.DemoAttendeeToken, map[string]interface{}{
		"hotelId":    hotels[0]["id"],
		"checkIn":    today.AddDate(0, 0, 1).Format("2006-01-02"),
		"checkOut":   today.AddDate(0, 0, 2).Format("2006-01-02"),
		"rooms":      4,
		"guests":     4,
		"roomType":   "suite",
		"guestName":  "Ada Obi",
		"guestEmail": "ada@example.com",
	})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Equal(t, "NO_AVAILABILITY", env.Code)
}

func TestPaymentRedirectWithoutReference(t *testing.T) {
	r := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/payments/verify", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://app.test/bookings?payment=error", w.Header().Get("Location"))
}

func TestPaymentWebhook(t *testing.T) {
	r := newTestApp(t)

	post := func(body []byte, signature string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/payments/verify", bytes.NewReader(body))
		req.Header.Set(payments.SignatureHeader, signature)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	body := []byte(`{"event":"charge.success","data":{"reference":"CXB-UNKNOWN1"}}`)
	assert.Equal(t, http.StatusUnauthorized, post(body, "bad").Code)
	// verified but matching nothing is acknowledged
	assert.Equal(t, http.StatusOK, post(body, payments.Sign(webhookSecret, body)).Code)

	ignored := []byte(`{"event":"transfer.success","data":{}}`)
	assert.Equal(t, http.StatusOK, post(ignored, payments.Sign(webhookSecret, ignored)).Code)

	malformed := []byte(`{not json`)
	assert.Equal(t, http.StatusBadRequest, post(malformed, payments.Sign(webhookSecret, malformed)).Code)
}

func TestBandVoting(t *testing.T) {
	r := newTestApp(t)
	_, env := call(t, r, http.MethodGet, "/api/bands", "", nil)
	bands := decode[[]map[string]interface{}](t, env.Data)
	require.Len(t, bands, 5)
	id := bands[0]["id"].(string)

	w, env := call(t, r, http.MethodPost, "/api/bands/"+id+"/vote", container.DemoAttendeeToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(1), decode[map[string]interface{}](t, env.Data)["voteCount"])

	w, env = call(t, r, http.MethodPost, "/api/bands/"+bands[1]["id"].(string)+"/vote", container.DemoAttendeeToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ALREADY_VOTED", env.Code)
}

func TestConcurrentVotesCountOnce(t *testing.T) {
	r := newTestApp(t)
	_, env := call(t, r, http.MethodGet, "/api/bands", "", nil)
	id := decode[[]map[string]interface{}](t, env.Data)[0]["id"].(string)

	var wg sync.WaitGroup
	codes := make(chan int, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/bands/"+id+"/vote", nil)
			req.Header.Set("Authorization", "Bearer "+container.DemoAdminToken)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			codes <- w.Code
		}()
	}
	wg.Wait()
	close(codes)

	ok := 0
	for code := range codes {
		if code == http.StatusOK {
			ok++
		}
	}
	assert.Equal(t, 1, ok)

	_, env = call(t, r, http.MethodGet, "/api/bands", "", nil)
	bands := decode[[]map[string]interface{}](t, env.Data)
	assert.Equal(t, id, bands[0]["id"])
	assert.Equal(t, float64(1), bands[0]["voteCount"])
}

func TestLiveUpdatesRequireAdmin(t *testing.T) {
	r := newTestApp(t)
	update := map[string]interface{}{"title": "Route change", "content": "Parade now turns at Marian Road", "category": "traffic", "isPinned": true}

	w, env := call(t, r, http.MethodPost, "/api/live-updates", container.DemoAttendeeToken, update)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", env.Code)

	w, _ = call(t, r, http.MethodPost, "/api/live-updates", container.DemoAdminToken, update)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = call(t, r, http.MethodGet, "/api/live-updates?category=traffic", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	updates := decode[[]map[string]interface{}](t, env.Data)
	require.Len(t, updates, 1)
	assert.Equal(t, "Route change", updates[0]["title"])
}

func TestSafetyFlow(t *testing.T) {
	r := newTestApp(t)
	token := container.DemoAttendeeToken

	w, env := call(t, r, http.MethodPost, "/api/safety/emergency", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	incident := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, "critical", incident["severity"])
	assert.Equal(t, "emergency", incident["type"])

	w, env = call(t, r, http.MethodPost, "/api/safety/incidents", token, map[string]interface{}{"type": "arson", "description": "smoke"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION", env.Code)

	w, _ = call(t, r, http.MethodPost, "/api/safety/incidents", token, map[string]interface{}{"type": "theft", "description": "phone snatched near the stage"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = call(t, r, http.MethodGet, "/api/safety/incidents", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, env.Total)

	w, env = call(t, r, http.MethodPost, "/api/safety/family", token, map[string]interface{}{
		"name":    "Obi family",
		"members": []map[string]interface{}{{"name": "Chidi", "age": 9}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	group := decode[map[string]interface{}](t, env.Data)
	members := group["members"].([]interface{})
	require.Len(t, members, 1)
	memberID := members[0].(map[string]interface{})["id"].(string)
	path := "/api/safety/family/" + group["id"].(string) + "/members/" + memberID

	w, env = call(t, r, http.MethodPatch, path, token, map[string]interface{}{"isMissing": true, "lastSeenLocation": "Main stage"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	member := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, true, member["isMissing"])
	assert.NotNil(t, member["lastSeenAt"])

	// someone else's group is invisible
	w, _ = call(t, r, http.MethodPatch, path, container.DemoAdminToken, map[string]interface{}{"isMissing": false})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLocationShareByCode(t *testing.T) {
	r := newTestApp(t)
	token := container.DemoAttendeeToken

	w, env := call(t, r, http.MethodPost, "/api/safety/location-share", token, map[string]interface{}{"latitude": 4.95, "longitude": 8.32})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	share := decode[map[string]interface{}](t, env.Data)
	code := share["shareCode"].(string)
	assert.Len(t, code, 8)

	w, _ = call(t, r, http.MethodPatch, "/api/safety/location-share/"+share["id"].(string), token, map[string]interface{}{"latitude": 4.96, "longitude": 8.33})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = call(t, r, http.MethodGet, "/api/safety/location-share/code/"+code, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	public := decode[map[string]interface{}](t, env.Data)
	assert.Len(t, public["history"], 1)

	w, _ = call(t, r, http.MethodDelete, "/api/safety/location-share/"+share["id"].(string), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = call(t, r, http.MethodGet, "/api/safety/location-share/code/"+code, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileIsSelfOnly(t *testing.T) {
	r := newTestApp(t)
	self := "/api/profile/" + container.DemoAttendeeID.String()

	w, env := call(t, r, http.MethodGet, self, container.DemoAttendeeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attendee", decode[map[string]interface{}](t, env.Data)["role"])

	w, _ = call(t, r, http.MethodGet, self, container.DemoAdminToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = call(t, r, http.MethodPut, self+"/language", container.DemoAttendeeToken, map[string]string{"language": "de"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = call(t, r, http.MethodPut, self+"/language", container.DemoAttendeeToken, map[string]string{"language": "pcm"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "pcm", decode[map[string]interface{}](t, env.Data)["language"])
}

func TestI18nRoutes(t *testing.T) {
	r := newTestApp(t)
	w, env := call(t, r, http.MethodGet, "/api/i18n/languages", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]interface{}](t, env.Data), 7)

	w, _ = call(t, r, http.MethodGet, "/api/i18n/efi", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = call(t, r, http.MethodGet, "/api/i18n/xx", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGeoDistance(t *testing.T) {
	r := newTestApp(t)
	w, env := call(t, r, http.MethodGet, "/api/geo/distance?fromLat=4.9757&fromLng=8.3417&toLat=4.9757&toLng=8.3417", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	est := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, float64(0), est["distanceKm"])

	w, _ = call(t, r, http.MethodGet, "/api/geo/distance?fromLat=4.9", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConciergeSessionWithReply(t *testing.T) {
	r := newTestApp(t)
	token := container.DemoAttendeeToken

	w, env := call(t, r, http.MethodPost, "/api/concierge/sessions", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	session := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, "New conversation", session["title"])
	id := session["id"].(string)

	w, _ = call(t, r, http.MethodPost, "/api/concierge/sessions/"+id+"/messages", token, map[string]interface{}{
		"content": "Where does the parade start?", "generateReply": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = call(t, r, http.MethodGet, "/api/concierge/sessions/"+id+"/messages", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	messages := decode[[]map[string]interface{}](t, env.Data)
	require.Len(t, messages, 2)
	assert.Equal(t, "assistant", messages[1]["role"])

	w, _ = call(t, r, http.MethodGet, "/api/concierge/sessions/"+id, container.DemoAdminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicChat(t *testing.T) {
	r := newTestApp(t)
	w, env := call(t, r, http.MethodPost, "/api/chat", "", map[string]interface{}{
		"messages": []map[string]string{{"role": "user", "content": "Which hotels are close to the stadium?"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decode[map[string]interface{}](t, env.Data)["reply"])

	w, _ = call(t, r, http.MethodPost, "/api/chat", "", map[string]interface{}{"messages": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavourites(t *testing.T) {
	r := newTestApp(t)
	token := container.DemoAttendeeToken
	_, env := call(t, r, http.MethodGet, "/api/events", "", nil)
	eventID := decode[[]map[string]interface{}](t, env.Data)[0]["id"].(string)

	w, _ := call(t, r, http.MethodPost, "/api/favourites/"+eventID, token, map[string]string{"itemType": "event"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = call(t, r, http.MethodPost, "/api/favourites/"+eventID, token, map[string]string{"itemType": "venue"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = call(t, r, http.MethodGet, "/api/favourites", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	favs := decode[map[string]interface{}](t, env.Data)
	assert.Len(t, favs["items"], 1)

	w, _ = call(t, r, http.MethodDelete, "/api/favourites/"+eventID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	r := newTestApp(t)
	w, env := call(t, r, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Code)
}
