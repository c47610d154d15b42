package command

import (
	"testing"

	"github.com/dlshle/promise/errors"
	"github.com/dlshle/promise/testutils"
)

func TestCommand(t *testing.T) {
	testutils.NewGroup("command", "one-shot runnable").Cases(
		testutils.NewCase("success path", "", func() bool {
			captured := -1
			completed := false
			cmd := New(func() (interface{}, error) {
				return 42, nil
			}).OnSuccess(func(value interface{}) {
				captured = value.(int)
			}).OnComplete(func(cmd *Command) {
				completed = true
			})
			cmd.Run()
			return captured == 42 && completed && cmd.Result() == 42 && cmd.Executed()
		}),
		testutils.NewCase("error path", "", func() bool {
			captured := ""
			succeeded := false
			completed := false
			New(func() (interface{}, error) {
				return nil, errors.Error("cmd boom")
			}).OnSuccess(func(value interface{}) {
				succeeded = true
			}).OnError(func(err error) {
				captured = err.Error()
			}).OnComplete(func(cmd *Command) {
				completed = true
			}).Run()
			return captured == "cmd boom" && !succeeded && completed
		}),
		testutils.NewCase("operation panic becomes error", "", func() bool {
			captured := ""
			New(func() (interface{}, error) {
				panic(errors.Error("panicked"))
			}).OnError(func(err error) {
				captured = err.Error()
			}).Run()
			return captured == "panicked"
		}),
		testutils.NewCase("runs at most once", "", func() bool {
			runs := 0
			cmd := New(func() (interface{}, error) {
				runs++
				return nil, nil
			})
			cmd.Run()
			cmd.Run()
			return runs == 1
		}),
		testutils.NewCase("cancel before run suppresses execution", "", func() bool {
			runs := 0
			cmd := New(func() (interface{}, error) {
				runs++
				return nil, nil
			})
			cmd.Cancel()
			cmd.Run()
			return runs == 0 && !cmd.Executed()
		}),
		testutils.NewCase("cancel after run has no effect", "", func() bool {
			runs := 0
			cmd := New(func() (interface{}, error) {
				runs++
				return nil, nil
			})
			cmd.Run()
			cmd.Cancel()
			return runs == 1 && cmd.Executed()
		}),
		testutils.NewCase("chained commands per outcome", "", func() bool {
			order := ""
			onSuccess := New(func() (interface{}, error) {
				order += "s"
				return nil, nil
			})
			onComplete := New(func() (interface{}, error) {
				order += "c"
				return nil, nil
			})
			New(func() (interface{}, error) {
				order += "r"
				return nil, nil
			}).ThenRun(onSuccess).OnCompleteRun(onComplete).Run()
			return order == "rsc"
		}),
		testutils.NewCase("error command runs on failure only", "", func() bool {
			ran := false
			onError := New(func() (interface{}, error) {
				ran = true
				return nil, nil
			})
			New(func() (interface{}, error) {
				return nil, errors.Error("boom")
			}).OnErrorRun(onError).Run()
			return ran
		}),
		testutils.NewCase("callback faults are swallowed", "", func() bool {
			completed := false
			New(func() (interface{}, error) {
				return 1, nil
			}).OnSuccess(func(value interface{}) {
				panic("success callback fault")
			}).OnComplete(func(cmd *Command) {
				completed = true
			}).Run()
			return completed
		}),
	).Do(t)
}
