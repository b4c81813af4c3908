package lib

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"
)

const ActivationPath = "/api/accounts/register/activate/"

// ActivationCode derives the account activation code: lowercase hex MD5 of email followed by the decimal id.
func ActivationCode(email string, id int64) string {
	sum := md5.Sum([]byte(email + strconv.FormatInt(id, 10)))
	return hex.EncodeToString(sum[:])
}

func ActivationURL(publicURL, code string) string {
	return strings.TrimRight(publicURL, "/") + ActivationPath + code + "/"
}

// BookDetailURL is the absolute URL of a book's detail resource.
func BookDetailURL(publicURL string, id int64) string {
	return strings.TrimRight(publicURL, "/") + "/api/books/book-detail/" + strconv.FormatInt(id, 10) + "/"
}

// NormalizeEmail trims surrounding whitespace and lowercases the domain part.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
