// Package logging backs ringcore.Logger with glog, the structured-severity
// logger the rest of this module's lineage reaches for.
package logging

import (
	"github.com/golang/glog"

	"ringstore/internal/ringcore"
)

// GlogLogger writes every CRUD decision as a glog line. side distinguishes a
// coordinator's client-facing decision from a server's storage-side one, so
// a log-grep can tell "my request succeeded" from "I served this key".
type GlogLogger struct{}

// New returns a ready-to-use GlogLogger; it holds no state of its own.
func New() *GlogLogger { return &GlogLogger{} }

func side(coordinatorSide bool) string {
	if coordinatorSide {
		return "coordinator"
	}
	return "server"
}

func (l *GlogLogger) LogCreateSuccess(addr ringcore.Address, coordinatorSide bool, trID int, key, value string) {
	glog.Infof("[%s] %s CREATE SUCCESS tx=%d key=%q value=%q", addr, side(coordinatorSide), trID, key, value)
}

func (l *GlogLogger) LogCreateFail(addr ringcore.Address, coordinatorSide bool, trID int, key, value string) {
	glog.Warningf("[%s] %s CREATE FAIL tx=%d key=%q value=%q", addr, side(coordinatorSide), trID, key, value)
}

func (l *GlogLogger) LogReadSuccess(addr ringcore.Address, coordinatorSide bool, trID int, key, value string) {
	glog.Infof("[%s] %s READ SUCCESS tx=%d key=%q value=%q", addr, side(coordinatorSide), trID, key, value)
}

func (l *GlogLogger) LogReadFail(addr ringcore.Address, coordinatorSide bool, trID int, key string) {
	glog.Warningf("[%s] %s READ FAIL tx=%d key=%q", addr, side(coordinatorSide), trID, key)
}

func (l *GlogLogger) LogUpdateSuccess(addr ringcore.Address, coordinatorSide bool, trID int, key, value string) {
	glog.Infof("[%s] %s UPDATE SUCCESS tx=%d key=%q value=%q", addr, side(coordinatorSide), trID, key, value)
}

func (l *GlogLogger) LogUpdateFail(addr ringcore.Address, coordinatorSide bool, trID int, key, value string) {
	glog.Warningf("[%s] %s UPDATE FAIL tx=%d key=%q value=%q", addr, side(coordinatorSide), trID, key, value)
}

func (l *GlogLogger) LogDeleteSuccess(addr ringcore.Address, coordinatorSide bool, trID int, key string) {
	glog.Infof("[%s] %s DELETE SUCCESS tx=%d key=%q", addr, side(coordinatorSide), trID, key)
}

func (l *GlogLogger) LogDeleteFail(addr ringcore.Address, coordinatorSide bool, trID int, key string) {
	glog.Warningf("[%s] %s DELETE FAIL tx=%d key=%q", addr, side(coordinatorSide), trID, key)
}
