package std

// Package std - http.go
// Bundled std.http module: an outbound HTTP client only, grounded on
// the request/response side of the teacher's std/http.go (get_http,
// post_http, and friends). The teacher's server-hosting builtins
// (listen_http, create_server, serve_static, ...) are dropped rather
// than adapted — see DESIGN.md: a script that can bind a listening
// socket on whatever host runs the interpreter is a far larger trust
// boundary than one that can make outbound requests, and nothing in
// SPEC_FULL.md calls for Chiron scripts to host a server. net/http
// stays stdlib-backed per the DOMAIN STACK note, not a third-party
// HTTP client replacement.

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chiron-lang/chiron/value"
)

func init() {
	m := newModule("http")
	m.Functions["get"] = hostFunc("get", httpGet)
	m.Functions["post"] = hostFunc("post", httpPost)
	m.Functions["put"] = hostFunc("put", httpPut)
	m.Functions["delete"] = hostFunc("delete", httpDelete)
	m.Functions["url_encode"] = hostFunc("url_encode", httpURLEncode)
	m.Functions["url_decode"] = hostFunc("url_decode", httpURLDecode)
	register(m)
}

var httpClient = &http.Client{Timeout: 15 * time.Second}

func httpRequest(method string, urlStr, body string) (value.Value, error) {
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, urlStr, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", strings.ToLower(method), err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", strings.ToLower(method), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: reading response: %w", strings.ToLower(method), err)
	}

	result := value.NewMap()
	if err := result.Set(&value.String{Value: "status"}, &value.Integer{Value: int64(resp.StatusCode)}); err != nil {
		return nil, err
	}
	if err := result.Set(&value.String{Value: "body"}, &value.String{Value: string(respBody)}); err != nil {
		return nil, err
	}
	return result, nil
}

func httpGet(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	u, err := oneStringArgValue("get", args)
	if err != nil {
		return nil, err
	}
	return httpRequest(http.MethodGet, u, "")
}

func httpPost(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	u, body, err := twoStringArgs("post", args)
	if err != nil {
		return nil, err
	}
	return httpRequest(http.MethodPost, u, body)
}

func httpPut(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	u, body, err := twoStringArgs("put", args)
	if err != nil {
		return nil, err
	}
	return httpRequest(http.MethodPut, u, body)
}

func httpDelete(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	u, err := oneStringArgValue("delete", args)
	if err != nil {
		return nil, err
	}
	return httpRequest(http.MethodDelete, u, "")
}

func twoStringArgs(name string, args []value.Value) (string, string, error) {
	if len(args) != 2 {
		return "", "", fmt.Errorf("%s expects 2 arguments, got %d", name, len(args))
	}
	a, err := asString(args[0])
	if err != nil {
		return "", "", err
	}
	b, err := asString(args[1])
	if err != nil {
		return "", "", err
	}
	return a, b, nil
}

func httpURLEncode(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	s, err := oneStringArgValue("url_encode", args)
	if err != nil {
		return nil, err
	}
	return &value.String{Value: url.QueryEscape(s)}, nil
}

func httpURLDecode(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	s, err := oneStringArgValue("url_decode", args)
	if err != nil {
		return nil, err
	}
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return nil, fmt.Errorf("url_decode: %w", err)
	}
	return &value.String{Value: decoded}, nil
}
