package repositories

import (
	"context"
	"fmt"

	intdb "hoponhub/internal/db"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS buses (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	capacity INT NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS routes (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	from_location VARCHAR(100) NOT NULL,
	to_location VARCHAR(100) NOT NULL,
	departure_time VARCHAR(20) NOT NULL,
	price DOUBLE NOT NULL,
	date DATE NOT NULL,
	bus_id BIGINT NOT NULL,
	KEY idx_routes_from_to (from_location, to_location),
	CONSTRAINT fk_routes_bus FOREIGN KEY (bus_id) REFERENCES buses(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS seats (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	seat_number VARCHAR(10) NOT NULL,
	is_available BOOLEAN NOT NULL DEFAULT TRUE,
	bus_id BIGINT NOT NULL,
	UNIQUE KEY uniq_bus_seat (bus_id, seat_number),
	CONSTRAINT fk_seats_bus FOREIGN KEY (bus_id) REFERENCES buses(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS passengers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	age INT NOT NULL,
	email VARCHAR(100) NOT NULL,
	phone VARCHAR(20) NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	total_price DOUBLE NOT NULL,
	payment_status VARCHAR(20) NOT NULL DEFAULT 'Pending',
	payment_method VARCHAR(20) NOT NULL DEFAULT '',
	passenger_id BIGINT NOT NULL,
	route_id BIGINT NOT NULL,
	seat_id BIGINT NOT NULL,
	UNIQUE KEY uniq_route_seat (route_id, seat_id),
	CONSTRAINT fk_bookings_passenger FOREIGN KEY (passenger_id) REFERENCES passengers(id),
	CONSTRAINT fk_bookings_route FOREIGN KEY (route_id) REFERENCES routes(id),
	CONSTRAINT fk_bookings_seat FOREIGN KEY (seat_id) REFERENCES seats(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// tables in dependency order; ClearAll deletes in reverse.
var tables = []string{"buses", "routes", "seats", "passengers", "bookings"}

// EnsureSchema creates the tables if they do not exist.
func EnsureSchema(ctx context.Context, q intdb.DBTX) error {
	for _, ddl := range schema {
		if _, err := q.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// ClearAll removes every row, children first.
func ClearAll(ctx context.Context, q intdb.DBTX) error {
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := q.ExecContext(ctx, "DELETE FROM "+tables[i]); err != nil {
			return fmt.Errorf("clear %s: %w", tables[i], err)
		}
	}
	return nil
}

// MissingTables lists the tables EnsureSchema would create.
func MissingTables(ctx context.Context, q intdb.DBTX) []string {
	out := []string{}
	for _, t := range tables {
		if !intdb.HasTable(ctx, q, t) {
			out = append(out, t)
		}
	}
	return out
}
