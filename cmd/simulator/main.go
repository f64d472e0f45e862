package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
)

// Vehicle is the create request sent to the API.
type Vehicle struct {
	Brand           string `json:"brand"`
	Model           string `json:"model"`
	EngineCode      string `json:"engine_code,omitempty"`
	LicensePlate    string `json:"license_plate"`
	OwnerName       string `json:"owner_name"`
	CustomerPhone   string `json:"customer_phone"`
	ManufactureYear int    `json:"manufacture_year"`
	CurrentMileage  int    `json:"current_mileage"`
}

// MaintenanceEntry is a multi-item maintenance visit.
type MaintenanceEntry struct {
	Date                   string   `json:"date"`
	Mileage                int      `json:"mileage"`
	Technician             string   `json:"technician,omitempty"`
	Cost                   *float64 `json:"cost,omitempty"`
	Notes                  string   `json:"notes,omitempty"`
	NextMaintenanceMileage *int     `json:"next_maintenance_mileage,omitempty"`
	ItemIDs                []string `json:"item_ids"`
}

var catalog = map[string][]string{
	"Toyota": {"Camry", "Corolla", "RAV4", "Yaris"},
	"Honda":  {"Civic", "CR-V", "Fit"},
	"Nissan": {"Sentra", "Kicks", "X-Trail"},
	"Mazda":  {"3", "CX-5"},
	"Ford":   {"Focus", "Kuga"},
}

var brands = []string{"Toyota", "Honda", "Nissan", "Mazda", "Ford"}

var owners = []string{"張三", "李四", "王五", "趙六", "陳七", "林八"}

var technicians = []string{"陳志明", "林建國", "王大明"}

var httpClient = &http.Client{Timeout: 10 * time.Second}

func randomPlate() string {
	letters := make([]byte, 3)
	for i := range letters {
		letters[i] = byte('A' + rand.Intn(26))
	}
	return fmt.Sprintf("%s-%04d", letters, rand.Intn(10000))
}

func randomVehicle() Vehicle {
	brand := brands[rand.Intn(len(brands))]
	models := catalog[brand]
	return Vehicle{
		Brand:           brand,
		Model:           models[rand.Intn(len(models))],
		LicensePlate:    randomPlate(),
		OwnerName:       owners[rand.Intn(len(owners))],
		CustomerPhone:   fmt.Sprintf("09%02d-%03d-%03d", rand.Intn(100), rand.Intn(1000), rand.Intn(1000)),
		ManufactureYear: 2015 + rand.Intn(10),
		CurrentMileage:  5000 + rand.Intn(80000),
	}
}

func postJSON(ctx context.Context, url string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return httpClient.Do(req)
}

func createVehicle(ctx context.Context, apiURL string, v Vehicle) (string, error) {
	resp, err := postJSON(ctx, apiURL+"/vehicles", v)
	if err != nil {
		return "", fmt.Errorf("failed to create vehicle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("vehicle creation failed with status: %d", resp.StatusCode)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("invalid vehicle ID in response")
	}

	log.WithFields(log.Fields{
		"vehicle_id":    result.ID,
		"license_plate": v.LicensePlate,
		"brand":         v.Brand,
		"model":         v.Model,
	}).Info("Created vehicle")
	return result.ID, nil
}

// fetchItemIDs lists the ids of the maintenance catalog.
func fetchItemIDs(ctx context.Context, apiURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"/items", nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("item listing failed with status: %d", resp.StatusCode)
	}
	var items []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids, nil
}

// VehicleState tracks the odometer of a simulated vehicle between visits.
type VehicleState struct {
	VehicleID string
	Mileage   int
}

// nextEntry advances the odometer by a few thousand kilometers and picks one to
// three items for the visit.
func nextEntry(s *VehicleState, itemIDs []string, now time.Time) MaintenanceEntry {
	s.Mileage += 1000 + rand.Intn(9000)
	count := 1 + rand.Intn(3)
	if count > len(itemIDs) {
		count = len(itemIDs)
	}
	picked := make([]string, 0, count)
	for _, i := range rand.Perm(len(itemIDs))[:count] {
		picked = append(picked, itemIDs[i])
	}
	cost := float64(300 + rand.Intn(50)*100)
	next := s.Mileage + 5000
	return MaintenanceEntry{
		Date:                   now.Format("2006-01-02"),
		Mileage:                s.Mileage,
		Technician:             technicians[rand.Intn(len(technicians))],
		Cost:                   &cost,
		NextMaintenanceMileage: &next,
		ItemIDs:                picked,
	}
}

func sendEntry(ctx context.Context, apiURL, vehicleID string, entry MaintenanceEntry) error {
	resp, err := postJSON(ctx, apiURL+"/vehicles/"+vehicleID+"/maintenance", entry)
	if err != nil {
		return fmt.Errorf("failed to send maintenance entry: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("maintenance entry failed with status: %d", resp.StatusCode)
	}
	log.WithFields(log.Fields{
		"vehicle_id": vehicleID,
		"mileage":    entry.Mileage,
		"items":      len(entry.ItemIDs),
	}).Info("Sent maintenance entry")
	return nil
}

func simulateVehicle(ctx context.Context, apiURL string, s *VehicleState, itemIDs []string, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tick.C:
			entry := nextEntry(s, itemIDs, now)
			if err := sendEntry(ctx, apiURL, s.VehicleID, entry); err != nil {
				log.WithError(err).WithField("vehicle_id", s.VehicleID).Error("Maintenance entry rejected")
			}
		}
	}
}

func envInt(key string, fallback, lowest int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= lowest {
			return n
		}
	}
	return fallback
}

func main() {
	fleetSize := envInt("FLEET_SIZE", 10, 0)
	interval := time.Duration(envInt("SIM_TICK_SECONDS", 2, 1)) * time.Second
	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}

	log.WithFields(log.Fields{
		"fleet_size": fleetSize,
		"api_url":    apiURL,
		"interval":   interval,
	}).Info("Starting maintenance simulation")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	itemIDs, err := fetchItemIDs(ctx, apiURL)
	if err != nil || len(itemIDs) == 0 {
		log.WithError(err).Error("No maintenance items available. Ensure the API is reachable. Exiting.")
		return
	}

	states := make([]*VehicleState, 0, fleetSize)
	for i := 0; i < fleetSize; i++ {
		v := randomVehicle()
		id, err := createVehicle(ctx, apiURL, v)
		if err != nil {
			log.WithError(err).Error("Failed to create vehicle")
			continue
		}
		states = append(states, &VehicleState{VehicleID: id, Mileage: v.CurrentMileage})
	}

	log.WithField("created_vehicles", len(states)).Info("Vehicle creation completed")
	if len(states) == 0 {
		log.Error("No vehicles created. Exiting.")
		return
	}

	var wg sync.WaitGroup
	for _, s := range states {
		wg.Add(1)
		go func() {
			defer wg.Done()
			simulateVehicle(ctx, apiURL, s, itemIDs, interval)
		}()
	}
	log.Info("Maintenance simulation started")
	wg.Wait()
	log.Info("Maintenance simulation stopped")
}
