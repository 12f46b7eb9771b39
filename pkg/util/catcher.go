package util

import "fmt"

// TryCatchBlock is a try-catch-finally control flow helper
type TryCatchBlock struct {
	Try     func()
	Catch   func(error)
	Finally func()
}

// Do executes Block try-catch-finally control flow
func (tcf TryCatchBlock) Do() {
	if tcf.Finally != nil {
		defer tcf.Finally()
	}
	if tcf.Catch != nil {
		defer func() {
			if r := recover(); r != nil {
				err, ok := r.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", r)
				}
				tcf.Catch(err)
			}
		}()
	}
	tcf.Try()
}

// CatchErrs runs fn and turns a panic inside it into a returned error
func CatchErrs(fn func() error) error {
	var err error
	TryCatchBlock{
		Try:   func() { err = fn() },
		Catch: func(e error) { err = e },
	}.Do()
	return err
}
