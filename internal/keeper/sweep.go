package keeper

import (
	"log"
	"time"
)

// StartSweep runs one sweep immediately and then periodically. The
// sweep keeps every pet current even when nobody is looking: offline
// deaths, hatches, and daily rollovers still fire on schedule.
func (k *Keeper) StartSweep(interval time.Duration) {
	// Run once at startup
	if err := k.Sweep(); err != nil {
		log.Printf("sweep error: %v", err)
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := k.Sweep(); err != nil {
					log.Printf("sweep error: %v", err)
				}
			case <-k.stopCh:
				return
			}
		}
	}()
}

// Sweep applies decay to every stored pet and resets stale caretaker
// counters.
func (k *Keeper) Sweep() error {
	pets, err := k.db.ListPets()
	if err != nil {
		return err
	}

	var died, hatched int
	for i := range pets {
		guildID := pets[i].GuildID
		lock := k.guildLock(guildID)
		lock.Lock()
		// Reload under the lock; the listing snapshot may be stale.
		_, res, err := k.loadAndDecay(guildID, time.Now().UTC())
		lock.Unlock()
		if err != nil {
			log.Printf("sweep guild %d: %v", guildID, err)
			continue
		}
		if res.Died {
			died++
		}
		if res.Hatched {
			hatched++
		}
	}
	if died > 0 || hatched > 0 {
		log.Printf("sweep: %d pets checked, %d died, %d hatched", len(pets), died, hatched)
	}

	return k.db.ResetDailyCaretakers()
}

// Stop shuts down the keeper's background goroutines.
func (k *Keeper) Stop() {
	close(k.stopCh)
}
