package config

import (
	"os"
	"os/signal"
	"sync"

	"github.com/sat20-labs/emission/common"
)

var (
	SigInt         chan os.Signal
	sigIntMutex    sync.Mutex
	sigIntFuncList = []func(){}
	releaseList    = []func(){}
)

func InitSigInt() {
	count := 0
	SigInt = make(chan os.Signal, 100)
	signal.Notify(SigInt, os.Interrupt)
	go func() {
		for {
			<-SigInt
			count++
			common.Log.Infof("Received SIGINT (CTRL+C), count %d, 3 times will close db and force exit", count)
			if count >= 3 {
				ReleaseRes()
				os.Exit(1)
			} else if count == 1 {
				sigIntMutex.Lock()
				for index := range sigIntFuncList {
					go sigIntFuncList[index]()
				}
				sigIntMutex.Unlock()
			}
		}
	}()
}

func RegistSigIntFunc(callback func()) {
	sigIntMutex.Lock()
	defer sigIntMutex.Unlock()
	sigIntFuncList = append(sigIntFuncList, callback)
}

// RegistReleaseFunc adds a resource closer run by ReleaseRes, in reverse
// registration order.
func RegistReleaseFunc(release func()) {
	sigIntMutex.Lock()
	defer sigIntMutex.Unlock()
	releaseList = append(releaseList, release)
}

func ReleaseRes() {
	sigIntMutex.Lock()
	list := releaseList
	releaseList = nil
	sigIntMutex.Unlock()
	for i := len(list) - 1; i >= 0; i-- {
		list[i]()
	}
}
