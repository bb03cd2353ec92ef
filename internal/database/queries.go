/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

const (
	// User queries
	queryGetUsers = `
		SELECT id, name
		FROM users
		ORDER BY id`

	queryGetUserById = `
		SELECT id, name
		FROM users
		WHERE id = ?`

	queryGetPasswordHash = `
		SELECT password_hash
		FROM users
		WHERE id = ?`

	queryUpsertUser = `
		INSERT INTO users (id, name, password_hash)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			password_hash = excluded.password_hash,
			updated_at = CURRENT_TIMESTAMP`

	// Account queries
	queryGetAccount = `
		SELECT user_id, deposit
		FROM accounts
		WHERE user_id = ?`

	queryUpsertAccount = `
		INSERT INTO accounts (user_id, deposit)
		VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			deposit = excluded.deposit,
			updated_at = CURRENT_TIMESTAMP`

	// Holding queries
	queryGetUserStocks = `
		SELECT user_id, stock_code, stock_name, quantity, avg_price,
		       current_price, total_value, profit_loss, profit_rate
		FROM user_stocks
		WHERE user_id = ?`

	queryUpsertUserStock = `
		INSERT INTO user_stocks (
			user_id, stock_code, stock_name, quantity, avg_price,
			current_price, total_value, profit_loss, profit_rate
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, stock_code) DO UPDATE SET
			stock_name = excluded.stock_name,
			quantity = excluded.quantity,
			avg_price = excluded.avg_price,
			current_price = excluded.current_price,
			total_value = excluded.total_value,
			profit_loss = excluded.profit_loss,
			profit_rate = excluded.profit_rate`

	// Trade history queries. Most-recent-first ordering is a contract the
	// callers rely on; trade_datetime's layout sorts lexicographically.
	queryGetTradeHistory = `
		SELECT id, user_id, account_number, stock_name, stock_code,
		       trade_datetime, trade_type, quantity, price, description
		FROM trade_history
		WHERE user_id = ?
		ORDER BY trade_datetime DESC, id DESC`

	queryUpsertTradeHistory = `
		INSERT INTO trade_history (
			id, user_id, account_number, stock_name, stock_code,
			trade_datetime, trade_type, quantity, price, description
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			account_number = excluded.account_number,
			stock_name = excluded.stock_name,
			stock_code = excluded.stock_code,
			trade_datetime = excluded.trade_datetime,
			trade_type = excluded.trade_type,
			quantity = excluded.quantity,
			price = excluded.price,
			description = excluded.description`
)
