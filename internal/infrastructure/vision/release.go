package vision

import "log"

// releasePrevious освобождает прежний дескриптор перед повторным открытием.
// Ошибка не мешает открыть устройство заново, поэтому только логируется.
func releasePrevious(device string, release func() error) {
	if err := release(); err != nil {
		log.Printf("Error releasing previous capture of %s: %v", device, err)
	}
}
