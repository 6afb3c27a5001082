package reaper

import "errors"

// ErrSweep возвращается при ошибке очистки просроченных удержаний
var ErrSweep = errors.New("reaper: sweep failed")
