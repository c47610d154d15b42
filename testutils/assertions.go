package testutils

import "fmt"

const assertionFailure = "assertion failure: "

func AssertTrue(val bool) {
	if !val {
		panic(assertionFailure + "value isn't true")
	}
}

func AssertFalse(val bool) {
	if val {
		panic(assertionFailure + "value isn't false")
	}
}

func AssertNil(val interface{}) {
	if val != nil {
		panic(assertionFailure + fmt.Sprintf("value %v isn't nil", val))
	}
}

func AssertNonNil(val interface{}) {
	if val == nil {
		panic(assertionFailure + "value is nil")
	}
}

func AssertEquals[T comparable](l T, r T) {
	if l != r {
		panic(assertionFailure + fmt.Sprintf("%v and %v are not equal", l, r))
	}
}

func AssertPanic(cb func()) {
	defer func() {
		if recover() == nil {
			panic(assertionFailure + "no panic value is recovered")
		}
	}()
	cb()
}
