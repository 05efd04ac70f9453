package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func validateLink(link string) error {
	return validate.Var(link, "required,url")
}

// promptLink asks for a jobs link until a valid URL is entered. rejected is
// the previous invalid input, if any.
func promptLink(in io.Reader, out io.Writer, rejected string) (string, error) {
	scanner := bufio.NewScanner(in)
	if rejected == "" {
		fmt.Fprint(out, "Provide a jobs link: ")
	} else {
		fmt.Fprintf(out, "%s is not a valid address. Please provide a valid link: ", rejected)
	}
	for scanner.Scan() {
		link := strings.TrimSpace(scanner.Text())
		if validateLink(link) == nil {
			return link, nil
		}
		fmt.Fprintf(out, "%s is not a valid address. Please provide a valid link: ", link)
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", errors.New("no valid link provided")
}
