package main

import "fmt"

func displayHelp() {
	fmt.Println("HyperVault Database - Help")
	fmt.Println("======================================")
	fmt.Println()
	fmt.Println("Special Commands:")
	fmt.Println("   help, h              - Show this help message")
	fmt.Println("   show tables          - List all tables in the database")
	fmt.Println("   show all, show data  - Display all data from all tables")
	fmt.Println("   show stats, stats    - Show database and query statistics")
	fmt.Println("   export <table>       - Write a table's rows to <table>.xlsx")
	fmt.Println("   clear, cls           - Clear the screen")
	fmt.Println("   exit, quit, q        - Exit the database")
	fmt.Println()
	fmt.Println("SQL Commands:")
	fmt.Println("   SELECT * FROM users")
	fmt.Println("   SELECT id, name FROM users WHERE age > '25'")
	fmt.Println("   SELECT * FROM users WHERE name = 'Anthony Etienne'")
	fmt.Println("   INSERT INTO users (id, name, email, age) VALUES ('5', 'John Doe', 'john@example.com', '32')")
	fmt.Println("   UPDATE users SET age = '26' WHERE id = '1'")
	fmt.Println("   UPDATE users SET email = 'new.email@example.com' WHERE name = 'Jane Doe'")
	fmt.Println("   DELETE FROM users WHERE age > '35'")
	fmt.Println("   DELETE FROM users WHERE id = '4'")
	fmt.Println()
	fmt.Println("Tips:")
	fmt.Println("   - Use single quotes for string values: 'value'")
	fmt.Println("   - Supported operators: =, >, <, >=, <=, !=, <>")
	fmt.Println("   - Use * to select all columns: SELECT * FROM table")
	fmt.Println("   - Commands are case-insensitive")
	fmt.Println("   - Complex queries show their execution plan")
	fmt.Println()
}
