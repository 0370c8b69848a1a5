package main

import "fmt"

// consoleView prints view changes instead of rendering them.
type consoleView struct{}

func (consoleView) ShowLoading()                  { fmt.Println("[loading]") }
func (consoleView) ShowDialogProgress(msg string) { fmt.Printf("[progress] %s\n", msg) }
func (consoleView) DismissDialog()                { fmt.Println("[dismiss]") }
func (consoleView) ShowToast(msg string)          { fmt.Printf("[toast] %s\n", msg) }
func (consoleView) ShowTips(msg string)           { fmt.Printf("[tips] %s\n", msg) }
func (consoleView) Restore()                      { fmt.Println("[restore]") }

func (consoleView) ShowEmpty(content string, retry func()) {
	fmt.Printf("[empty] %s (retry=%t)\n", content, retry != nil)
}

func (consoleView) ShowNetworkError(msg string, retry func()) {
	fmt.Printf("[network error] %s (retry=%t)\n", msg, retry != nil)
}
