// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package webfetch collects files from the web. Downloads shell out to the
// platform curl executable so that partial transfers can be resumed;
// directory listings are collected over HTTP and parsed from the anchor
// tags of the returned page.
package webfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sciflow/sciflow/internal/ctxlog"
	"github.com/sciflow/sciflow/internal/hostinfo"
	"golang.org/x/net/html"
)

var (
	// ErrCurlNotFound is returned when the curl executable cannot be located.
	ErrCurlNotFound = errors.New("curl executable not found in the run-time environment")
	// ErrFetch is returned when a URL cannot be collected.
	ErrFetch = errors.New("failed to collect URL")
	// ErrList is returned when a URL listing cannot be collected.
	ErrList = errors.New("failed to list URL contents")
)

// Get collects url using the platform curl executable. When localName is
// empty the remote basename is kept and the transfer is resumable
// (curl -C - -O); otherwise the file is written to dir/localName. When
// ignoreMissing is set a failed transfer is logged and ignored.
func Get(ctx context.Context, url, dir, localName string, ignoreMissing bool) error {
	curl := hostinfo.AppPath("curl")
	if curl == "" {
		return ErrCurlNotFound
	}

	var args []string

	switch localName {
	case "":
		args = []string{"-fsS", "-C", "-", "-O", url}
	default:
		args = []string{"-fsS", "-o", filepath.Join(dir, localName), url}
	}

	ctxlog.Info(ctx, "collecting URL", "url", url, "dir", dir)

	cmd := exec.CommandContext(ctx, curl, args...)
	cmd.Dir = dir

	if out, err := cmd.CombinedOutput(); err != nil {
		if ignoreMissing {
			ctxlog.Warn(ctx, "ignoring failed URL collection", "url", url, "error", err)
			return nil
		}

		return fmt.Errorf("%w: %s: %v: %s", ErrFetch, url, err, strings.TrimSpace(string(out)))
	}

	return nil
}

// List collects the names linked from the page at url, keeping those with
// the given extension. An empty extension keeps every link. The returned
// entries are the link targets joined to url.
func List(ctx context.Context, url, ext string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Join(ErrList, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.Join(ErrList, err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %s", ErrList, url, resp.Status)
	}

	hrefs, err := anchorTargets(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrList, err)
	}

	var list []string

	for _, href := range hrefs {
		if !strings.HasSuffix(href, ext) {
			continue
		}

		list = append(list, url+"/"+href)
	}

	return list, nil
}

// anchorTargets extracts the href attribute of every anchor tag in the
// HTML document read from r.
func anchorTargets(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var hrefs []string

	var walk func(*html.Node)

	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					hrefs = append(hrefs, attr.Val)
					break
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)

	return hrefs, nil
}
