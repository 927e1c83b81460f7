package auth

import (
	"fmt"
	"io"
	"strings"
)

// WriteCookieGuide explains how to copy the login cookies out of a browser
func WriteCookieGuide(w io.Writer) {
	rule := strings.Repeat("=", 72)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "NAVER LOGIN COOKIE GUIDE")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The crawler reads member-only cafe pages with your browser's login cookies.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "1. Log in at https://nid.naver.com and open the cafe you want to crawl.")
	fmt.Fprintln(w, "2. Open Developer Tools (F12, or Cmd+Option+I on macOS).")
	fmt.Fprintln(w, "3. Application (Chrome) or Storage (Firefox) tab > Cookies > https://cafe.naver.com")
	fmt.Fprintln(w, "4. Copy the values of these two cookies:")
	fmt.Fprintf(w, "     %-8s  short token identifying the login\n", CookieNIDAut)
	fmt.Fprintf(w, "     %-8s  long session token\n", CookieNIDSes)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Copy only the value, without quotes or the trailing semicolon.")
	fmt.Fprintln(w, "The cookies expire when you log out of the browser; run `auth login` again then.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "These cookies grant full access to your account. They are stored in the")
	fmt.Fprintln(w, "system keychain or an encrypted file, never in the config file.")
	fmt.Fprintln(w, rule)
}

// WriteQuickGuide prints the one-line version of the guide
func WriteQuickGuide(w io.Writer) {
	fmt.Fprintf(w, "F12 > Application > Cookies > cafe.naver.com, copy %s and %s (type 'help' for details)\n",
		CookieNIDAut, CookieNIDSes)
}
