// file: internals/helpers/dsrapi/dsr_client.go
package helper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

/*
   Client untuk DSR REST API (system of record). Gateway tidak pernah
   menyimpan state peminjaman; semua mutasi diteruskan ke sini.
*/

type Client struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Timeout: timeout,
	}
}

// UpstreamError: respons non-2xx dari DSR API. Pesan diteruskan apa adanya.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// AsFiberError: UpstreamError → status & pesan upstream apa adanya;
// timeout → 504; gagal koneksi → 502.
func AsFiberError(err error) error {
	if err == nil {
		return nil
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return fiber.NewError(ue.Status, ue.Message)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, fasthttp.ErrTimeout) {
		return fiber.NewError(fiber.StatusGatewayTimeout, "DSR API tidak merespons")
	}
	if errors.Is(err, context.Canceled) {
		return fiber.NewError(fiber.StatusRequestTimeout, "Request dibatalkan")
	}
	return fiber.NewError(fiber.StatusBadGateway, "DSR API tidak dapat dihubungi")
}

// Response mentah (dipakai passthrough & download).
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

type envelope struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

/* =========================================================
   LOW-LEVEL
========================================================= */

func (cl *Client) timeoutFor(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	timeout := cl.Timeout
	if dl, ok := ctx.Deadline(); ok {
		left := time.Until(dl)
		if left <= 0 {
			return 0, context.DeadlineExceeded
		}
		if left < timeout {
			timeout = left
		}
	}
	return timeout, nil
}

// Raw mengirim request dan mengembalikan respons apa adanya (tanpa cek status).
func (cl *Client) Raw(ctx context.Context, method, path, token string, query url.Values, body []byte, contentType string) (*Response, error) {
	timeout, err := cl.timeoutFor(ctx)
	if err != nil {
		return nil, err
	}

	uri := cl.BaseURL + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if body != nil {
		if contentType == "" {
			contentType = fiber.MIMEApplicationJSON
		}
		req.Header.SetContentType(contentType)
		req.SetBody(body)
	}
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return nil, fmt.Errorf("dsr api: url tidak valid %q: %w", uri, err)
	}
	a.Timeout(timeout)

	start := time.Now()
	done := make(chan agentResult, 1)
	go func() {
		resp := fiber.AcquireResponse()
		defer fiber.ReleaseResponse(resp)
		a.SetResponse(resp)
		code, respBody, errs := a.Bytes()
		done <- agentResult{code: code, body: respBody, contentType: string(resp.Header.ContentType()), errs: errs}
	}()

	// request klien batal → berhenti menunggu; goroutine selesai sendiri dalam batas timeout
	var r agentResult
	select {
	case r = <-done:
	case <-ctx.Done():
		log.Printf("[DSR] %s %s dibatalkan: %v", method, path, ctx.Err())
		return nil, fmt.Errorf("dsr api %s %s: %w", method, path, ctx.Err())
	}
	if len(r.errs) > 0 {
		log.Printf("[DSR] %s %s gagal: %v", method, path, r.errs[0])
		return nil, fmt.Errorf("dsr api %s %s: %w", method, path, r.errs[0])
	}
	log.Printf("[DSR] %s %s status=%d dur=%s", method, path, r.code, time.Since(start))

	return &Response{
		Status:      r.code,
		ContentType: r.contentType,
		Body:        r.body,
	}, nil
}

type agentResult struct {
	code        int
	body        []byte
	contentType string
	errs        []error
}

// do: request JSON; non-2xx → *UpstreamError; hasil sudah dibuka dari {data: ...}.
func (cl *Client) do(ctx context.Context, method, path, token string, query url.Values, payload any) ([]byte, error) {
	res, err := cl.send(ctx, method, path, token, query, payload)
	if err != nil {
		return nil, err
	}
	return unwrapData(res.Body), nil
}

func (cl *Client) send(ctx context.Context, method, path, token string, query url.Values, payload any) (*Response, error) {
	var body []byte
	if payload != nil {
		b, err := sonic.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("dsr api: encode payload: %w", err)
		}
		body = b
	}

	res, err := cl.Raw(ctx, method, path, token, query, body, fiber.MIMEApplicationJSON)
	if err != nil {
		return nil, err
	}
	if res.Status < 200 || res.Status > 299 {
		return nil, upstreamError(res)
	}
	return res, nil
}

func upstreamError(res *Response) *UpstreamError {
	msg := ""
	var env envelope
	if err := sonic.Unmarshal(res.Body, &env); err == nil {
		msg = firstNonEmpty(env.Message, env.Error)
	}
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status %d", res.Status)
	}
	return &UpstreamError{Status: res.Status, Message: msg}
}

// unwrapData: {data: X} → X, selain itu body apa adanya.
func unwrapData(body []byte) []byte {
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "{") {
		return body
	}
	var env envelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		return body
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return body
	}
	return env.Data
}

func decode[T any](raw []byte) (T, error) {
	var out T
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("dsr api: decode %T: %w", out, err)
	}
	return out, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}
