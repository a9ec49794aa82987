package services

import (
	"fmt"
	"math/rand"
	"time"
)

// CaptchaService hands out small arithmetic problems for the signup form.
// The answer lives in the session, never in the page.
type CaptchaService struct {
	rnd *rand.Rand
}

func NewCaptchaService() *CaptchaService {
	return &CaptchaService{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GenerateMathProblem returns the question text ("What is 3 + 5?") and its
// integer answer.
func (s *CaptchaService) GenerateMathProblem() (string, int) {
	a := s.rnd.Intn(9) + 1
	b := s.rnd.Intn(9) + 1

	if s.rnd.Intn(2) == 0 {
		return fmt.Sprintf("What is %d + %d?", a, b), a + b
	}

	// Subtraction stays non-negative
	if a < b {
		a, b = b, a
	}
	return fmt.Sprintf("What is %d - %d?", a, b), a - b
}
